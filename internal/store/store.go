// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists reference papers and research records. The
// pipeline treats every store operation as best-effort: failures are
// logged and ignored, never aborting a run.
package store

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-agent/pkg/types"
)

// Research-record section field names shared by both backends.
const (
	FieldAbstract         = "Abstract"
	FieldIntroduction     = "Introduction"
	FieldLiteratureReview = "Literature Review"
	FieldMethodology      = "Methodology"
	FieldResults          = "Results"
	FieldConclusion       = "Conclusion"
)

// sectionFields is the set of updatable research-record fields. Unknown
// keys in an update are dropped, not an error.
var sectionFields = map[string]bool{
	FieldAbstract:         true,
	FieldIntroduction:     true,
	FieldLiteratureReview: true,
	FieldMethodology:      true,
	FieldResults:          true,
	FieldConclusion:       true,
}

// PersistenceError reports a failed store operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store records papers and research documents keyed by topic.
type Store interface {
	// CreateReferencePaper records one fetched paper under a topic.
	CreateReferencePaper(ctx context.Context, paper types.Paper, topic, description string) error

	// CreateResearchRecord creates an empty research record for a topic.
	CreateResearchRecord(ctx context.Context, topic string) error

	// UpdateResearchRecord fills section fields on the record matching
	// topic exactly. Section keys outside the known field set are ignored.
	UpdateResearchRecord(ctx context.Context, topic string, sections map[string]string) error

	// ReferencePapersByTopic returns all papers recorded under a topic.
	ReferencePapersByTopic(ctx context.Context, topic string) ([]types.Paper, error)

	// Close releases backend resources.
	Close() error
}

// filterSections drops unknown section keys from an update.
func filterSections(sections map[string]string) map[string]string {
	filtered := make(map[string]string, len(sections))
	for k, v := range sections {
		if sectionFields[k] {
			filtered[k] = v
		}
	}
	return filtered
}
