// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv fetches candidate papers from the arXiv search API.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// DefaultMaxResults bounds the fetch when the caller does not specify a limit.
const DefaultMaxResults = 5

// APIBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://export.arxiv.org/api/query"

// FetchError reports a failed literature lookup. Fetch failures carry no
// partial results; the pipeline treats them as fatal.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetching papers: %v", e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher queries the arXiv API for papers matching a topic.
type Fetcher struct {
	Client    *http.Client
	UserAgent string

	// MaxRetries bounds transport-level retries on rate limiting.
	MaxRetries int
}

// Fetch returns up to maxResults papers matching topic, in feed order.
// A non-positive maxResults falls back to DefaultMaxResults. Transport
// failures and non-200 responses return a *FetchError; a feed with zero
// entries returns an empty slice and no error. One attempt only — there
// is no fetch-level retry policy.
func (f *Fetcher) Fetch(ctx context.Context, topic string, maxResults int) ([]types.Paper, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, &FetchError{Err: fmt.Errorf("empty topic")}
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	// QueryEscape encodes the spaces between terms as "+", which the API
	// decodes back to "all:<term> <term>".
	terms := strings.Join(strings.Fields(topic), " ")
	query := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d",
		APIBase, url.QueryEscape("all:"+terms), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("creating request: %w", err)}
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, f.MaxRetries)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("arXiv API request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Err: fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)}
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("parsing arXiv response: %w", err)}
	}

	papers := make([]types.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		papers = append(papers, normalizeEntry(entry))
	}
	return papers, nil
}

// normalizeEntry converts a raw feed entry into a Paper: title and summary
// have internal whitespace collapsed, authors are comma-joined, and the
// identifier URL and publish date are kept verbatim.
func normalizeEntry(entry atomEntry) types.Paper {
	names := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}

	return types.Paper{
		Title:     collapseWhitespace(entry.Title),
		Summary:   collapseWhitespace(entry.Summary),
		Authors:   strings.Join(names, ", "),
		ID:        entry.ID,
		Published: entry.Published,
	}
}

// collapseWhitespace trims the string and folds runs of whitespace,
// including the mid-title newlines arXiv feeds carry, into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures. Decoding <entry> into a slice handles
// both single-entry and multi-entry feeds.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}
