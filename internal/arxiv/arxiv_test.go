// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/research-agent/pkg/types"
)

const feedTwoEntries = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>A Review on Edge
  Analytics</title>
    <summary>  Edge analytics is
  the processing of data   near its source.  </summary>
    <published>2023-01-17T15:02:33Z</published>
    <author><name>S. Nayak</name></author>
    <author><name>R. Patgiri</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2305.08222v2</id>
    <title>Distributed Threat Intelligence</title>
    <summary>LLM-driven threat intelligence at the edge.</summary>
    <published>2023-05-14T10:00:00Z</published>
    <author><name>A. Shahid</name></author>
  </entry>
</feed>`

const feedSingleEntry = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.07041v1</id>
    <title>Lone Paper</title>
    <summary>Only entry.</summary>
    <published>2023-01-17T15:02:33Z</published>
    <author><name>J. Solo</name></author>
  </entry>
</feed>`

const feedEmpty = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query Results</title>
</feed>`

func newFeedServer(t *testing.T, body string, wantMax int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("search_query"); !strings.HasPrefix(got, "all:") {
			t.Errorf("search_query = %q, want all: prefix", got)
		}
		if wantMax > 0 {
			if got := q.Get("max_results"); got != fmt.Sprintf("%d", wantMax) {
				t.Errorf("max_results = %q, want %d", got, wantMax)
			}
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, body)
	}))
}

func TestFetch(t *testing.T) {
	ts := newFeedServer(t, feedTwoEntries, 5)
	defer ts.Close()
	oldBase := APIBase
	APIBase = ts.URL
	defer func() { APIBase = oldBase }()

	f := &Fetcher{Client: ts.Client(), UserAgent: "test/0.1"}
	papers, err := f.Fetch(context.Background(), "edge computing", 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	want := types.Paper{
		Title:     "A Review on Edge Analytics",
		Summary:   "Edge analytics is the processing of data near its source.",
		Authors:   "S. Nayak, R. Patgiri",
		ID:        "http://arxiv.org/abs/2301.07041v1",
		Published: "2023-01-17T15:02:33Z",
	}
	if papers[0] != want {
		t.Errorf("papers[0] = %+v\nwant %+v", papers[0], want)
	}
	if papers[1].Authors != "A. Shahid" {
		t.Errorf("papers[1].Authors = %q, want single author", papers[1].Authors)
	}
}

func TestFetchQueryTermEncoding(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, feedEmpty)
	}))
	defer ts.Close()
	oldBase := APIBase
	APIBase = ts.URL
	defer func() { APIBase = oldBase }()

	f := &Fetcher{Client: ts.Client()}
	if _, err := f.Fetch(context.Background(), "Edge   Computing", 5); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// Multi-word topics must decode server-side as space-separated terms,
	// not as literal plus signs.
	if gotQuery != "all:Edge Computing" {
		t.Errorf("search_query = %q, want %q", gotQuery, "all:Edge Computing")
	}
}

func TestFetchSingleEntryFeed(t *testing.T) {
	ts := newFeedServer(t, feedSingleEntry, 0)
	defer ts.Close()
	oldBase := APIBase
	APIBase = ts.URL
	defer func() { APIBase = oldBase }()

	// maxResults <= 0 falls back to the default.
	f := &Fetcher{Client: ts.Client()}
	papers, err := f.Fetch(context.Background(), "solitude", 0)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(papers) != 1 {
		t.Fatalf("got %d papers, want 1", len(papers))
	}
	if papers[0].Title != "Lone Paper" {
		t.Errorf("Title = %q", papers[0].Title)
	}
}

func TestFetchEmptyFeed(t *testing.T) {
	ts := newFeedServer(t, feedEmpty, 0)
	defer ts.Close()
	oldBase := APIBase
	APIBase = ts.URL
	defer func() { APIBase = oldBase }()

	f := &Fetcher{Client: ts.Client()}
	papers, err := f.Fetch(context.Background(), "no results", 5)
	if err != nil {
		t.Fatalf("empty feed should not be an error, got %v", err)
	}
	if len(papers) != 0 {
		t.Errorf("got %d papers, want 0", len(papers))
	}
}

func TestFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	oldBase := APIBase
	APIBase = ts.URL
	defer func() { APIBase = oldBase }()

	f := &Fetcher{Client: ts.Client()}
	_, err := f.Fetch(context.Background(), "edge computing", 5)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
}

func TestFetchEmptyTopic(t *testing.T) {
	f := &Fetcher{}
	_, err := f.Fetch(context.Background(), "   ", 5)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain title", "plain title"},
		{"  leading and trailing  ", "leading and trailing"},
		{"line\n  break", "line break"},
		{"tabs\tand\t\tspaces", "tabs and spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := collapseWhitespace(tt.in); got != tt.want {
			t.Errorf("collapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
