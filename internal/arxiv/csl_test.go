// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"bytes"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/pkg/types"
)

func TestFormatCSL(t *testing.T) {
	papers := []types.Paper{
		{
			Title:     "A Review on Edge Analytics",
			Summary:   "Survey of edge analytics.",
			Authors:   "Sabuzima Nayak, Ripon Patgiri",
			ID:        "http://arxiv.org/abs/2301.07041v1",
			Published: "2023-01-17T15:02:33Z",
		},
	}

	var buf bytes.Buffer
	if err := FormatCSL(papers, &buf); err != nil {
		t.Fatalf("FormatCSL: %v", err)
	}

	var items []CSLItem
	if err := yaml.Unmarshal(buf.Bytes(), &items); err != nil {
		t.Fatalf("round-trip unmarshal: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.ID != "2301.07041v1" {
		t.Errorf("ID = %q, want arXiv slug", item.ID)
	}
	if item.Type != "article" {
		t.Errorf("Type = %q, want article", item.Type)
	}
	if len(item.Author) != 2 {
		t.Fatalf("got %d authors, want 2", len(item.Author))
	}
	if item.Author[0].Family != "Nayak" || item.Author[0].Given != "Sabuzima" {
		t.Errorf("Author[0] = %+v", item.Author[0])
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2023 {
		t.Errorf("Issued = %+v, want year 2023", item.Issued)
	}
	if item.URL != papers[0].ID {
		t.Errorf("URL = %q", item.URL)
	}
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Ada Lovelace", CSLName{Given: "Ada", Family: "Lovelace"}},
		{"Jan van der Berg", CSLName{Given: "Jan van der", Family: "Berg"}},
		{"Plato", CSLName{Literal: "Plato"}},
		{"  ", CSLName{}},
	}
	for _, tt := range tests {
		if got := parseAuthorName(tt.in); got != tt.want {
			t.Errorf("parseAuthorName(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestCSLIDFallsBackToURL(t *testing.T) {
	id := "https://example.org/paper/42"
	if got := cslID(id); got != id {
		t.Errorf("cslID(%q) = %q, want verbatim", id, got)
	}
	if !strings.Contains(cslID("http://arxiv.org/abs/2305.08222v2"), "2305.08222") {
		t.Error("arXiv slug not extracted")
	}
}
