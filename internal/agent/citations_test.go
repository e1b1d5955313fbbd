// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"reflect"
	"testing"
)

func TestParseCitations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "json array",
			raw:  `Here you go: ["[1] A. Author, \"Title One,\" 2023.", "[2] B. Author, \"Title Two,\" 2023."]`,
			want: []string{
				`[1] A. Author, "Title One," 2023.`,
				`[2] B. Author, "Title Two," 2023.`,
			},
		},
		{
			name: "json array spanning lines",
			raw:  "[\n\"[1] First entry.\",\n\"[2] Second entry.\"\n]",
			want: []string{"[1] First entry.", "[2] Second entry."},
		},
		{
			name: "bracket line fallback",
			raw:  "Some preamble\n[1] A. Author, unquoted entry, 2023.\n[2] B. Author, another, 2023.\ntrailing note",
			want: []string{
				"[1] A. Author, unquoted entry, 2023.",
				"[2] B. Author, another, 2023.",
			},
		},
		{
			name: "verbatim fallback",
			raw:  "no structure at all",
			want: []string{"no structure at all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCitations(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCitations(%q)\n got %q\nwant %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanFenced(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```latex\n\\bibitem{r1}\n```", "\\bibitem{r1}"},
		{"```dot\ndigraph G {}\n```", "digraph G {}"},
		{`line one\nline two`, "line one\nline two"},
		{"  plain  ", "plain"},
	}
	for _, tt := range tests {
		if got := CleanFenced(tt.in); got != tt.want {
			t.Errorf("CleanFenced(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
