// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"io"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that exported bibliographies are consumable by Pandoc and reference
// managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes fetched papers as a CSL-YAML list to w.
func FormatCSL(papers []types.Paper, w io.Writer) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = toCSLItem(p)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Paper to a CSLItem. The CSL id is the arXiv slug
// when the identifier URL carries one, otherwise the full URL.
func toCSLItem(p types.Paper) CSLItem {
	item := CSLItem{
		ID:       cslID(p.ID),
		Type:     "article",
		Title:    p.Title,
		Abstract: p.Summary,
		URL:      p.ID,
	}

	for _, name := range strings.Split(p.Authors, ",") {
		if n := parseAuthorName(name); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}

	if t, err := time.Parse(time.RFC3339, p.Published); err == nil {
		item.Issued = &CSLDate{
			DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}},
		}
	} else if y, err := strconv.Atoi(p.PublishYear()); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}

	return item
}

// cslID pulls the arXiv slug from an abstract URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1").
func cslID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return idURL
	}
	return idURL[idx+len(prefix):]
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
