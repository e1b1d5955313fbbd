// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonListPattern locates a bracketed list anywhere in raw model output.
// (?s) lets the list span lines.
var jsonListPattern = regexp.MustCompile(`(?s)\[.*\]`)

// citationParsers is the ordered fallback chain for citation output:
// structured decode first, then a line scan, tried in order with the first
// success winning. The verbatim wrap in ParseCitations is the terminal
// fallback.
var citationParsers = []func(string) ([]string, bool){
	parseJSONList,
	parseBracketLines,
}

// ParseCitations extracts an ordered citation list from raw model output.
// It never fails: when no strategy matches, the raw output becomes a
// one-element list.
func ParseCitations(raw string) []string {
	for _, parse := range citationParsers {
		if citations, ok := parse(raw); ok {
			return citations
		}
	}
	return []string{raw}
}

// parseJSONList decodes a JSON string array embedded in the output.
func parseJSONList(raw string) ([]string, bool) {
	match := jsonListPattern.FindString(raw)
	if match == "" {
		return nil, false
	}
	var citations []string
	if err := json.Unmarshal([]byte(match), &citations); err != nil {
		return nil, false
	}
	if len(citations) == 0 {
		return nil, false
	}
	return citations, true
}

// parseBracketLines collects lines that look like numbered citation
// entries: starting with "[" and containing "]".
func parseBracketLines(raw string) ([]string, bool) {
	var citations []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.Contains(line, "]") {
			citations = append(citations, line)
		}
	}
	return citations, len(citations) > 0
}
