// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diagram turns Graphviz DOT source into a renderable image URL.
package diagram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/research-agent/internal/agent"
)

// RenderBase is the external rendering service endpoint. Declared as a var
// so tests can substitute an httptest server.
var RenderBase = "https://quickchart.io/graphviz"

// RenderURL normalizes DOT source and embeds it percent-encoded in the
// rendering-service URL. It never fails: unusable input yields "", which
// the pipeline records as "no diagram available".
func RenderURL(dotSource string) string {
	normalized := normalize(dotSource)
	if normalized == "" {
		return ""
	}
	return RenderBase + "?graph=" + url.QueryEscape(normalized)
}

// normalize strips code fences, unescapes literal "\n", and terminates
// statements. Flowchart generation already normalizes its output once;
// this second pass also covers DOT source arriving from other callers, and
// unlike the agent's pass it leaves graph-root declaration lines
// unterminated.
func normalize(dotSource string) string {
	cleaned := agent.CleanFenced(dotSource)

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasSuffix(line, ";"), strings.HasSuffix(line, "{"), strings.HasSuffix(line, "}"):
			lines = append(lines, line)
		case strings.HasPrefix(line, "digraph"), strings.HasPrefix(line, "graph"):
			lines = append(lines, line)
		default:
			lines = append(lines, line+";")
		}
	}
	return strings.Join(lines, "\n")
}

// Download fetches the rendered diagram image.
func Download(ctx context.Context, client *http.Client, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading diagram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("diagram service returned HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
