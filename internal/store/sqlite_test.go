// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pdiddy/research-agent/pkg/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "research.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteReferencePapersRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	papers := []types.Paper{
		{
			Title:     "Offloading at the Edge",
			Summary:   "A survey of offloading strategies.",
			Authors:   "A. Author, B. Author",
			ID:        "http://arxiv.org/abs/2101.00001v1",
			Published: "2021-01-01T00:00:00Z",
		},
		{
			Title:     "Latency-Aware Scheduling",
			Summary:   "Scheduling under latency constraints.",
			Authors:   "C. Author",
			ID:        "http://arxiv.org/abs/2102.00002v1",
			Published: "2021-02-01T00:00:00Z",
		},
	}
	for _, p := range papers {
		if err := s.CreateReferencePaper(ctx, p, "Edge Computing", "Survey of edge systems"); err != nil {
			t.Fatalf("CreateReferencePaper: %v", err)
		}
	}

	got, err := s.ReferencePapersByTopic(ctx, "Edge Computing")
	if err != nil {
		t.Fatalf("ReferencePapersByTopic: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d papers, want 2", len(got))
	}
	if got[0].Title != papers[0].Title || got[0].ID != papers[0].ID {
		t.Errorf("first paper = %+v, want %+v", got[0], papers[0])
	}

	other, err := s.ReferencePapersByTopic(ctx, "Quantum Networking")
	if err != nil {
		t.Fatalf("ReferencePapersByTopic (other topic): %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d papers for unrelated topic, want 0", len(other))
	}
}

func TestSQLiteResearchRecordLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateResearchRecord(ctx, "Edge Computing"); err != nil {
		t.Fatalf("CreateResearchRecord: %v", err)
	}
	// Duplicate create is a no-op.
	if err := s.CreateResearchRecord(ctx, "Edge Computing"); err != nil {
		t.Fatalf("CreateResearchRecord (duplicate): %v", err)
	}

	sections := map[string]string{
		FieldAbstract:         "An abstract.",
		FieldLiteratureReview: "A review.",
		"Unknown Field":       "ignored",
	}
	if err := s.UpdateResearchRecord(ctx, "Edge Computing", sections); err != nil {
		t.Fatalf("UpdateResearchRecord: %v", err)
	}

	var abstract, review string
	row := s.db.QueryRow(`SELECT abstract, literature_review FROM research_papers WHERE topic = ?`, "Edge Computing")
	if err := row.Scan(&abstract, &review); err != nil {
		t.Fatalf("scanning record: %v", err)
	}
	if abstract != "An abstract." {
		t.Errorf("abstract = %q, want %q", abstract, "An abstract.")
	}
	if review != "A review." {
		t.Errorf("literature_review = %q, want %q", review, "A review.")
	}
}

func TestSQLiteUpdateMissingRecord(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateResearchRecord(context.Background(), "No Such Topic", map[string]string{FieldAbstract: "x"})
	if err == nil {
		t.Fatal("expected error updating missing record")
	}
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *PersistenceError", err)
	}
}

func TestSQLiteUpdateNoKnownSections(t *testing.T) {
	s := newTestStore(t)

	// Nothing to write means no lookup and no error.
	err := s.UpdateResearchRecord(context.Background(), "No Such Topic", map[string]string{"Unknown": "x"})
	if err != nil {
		t.Fatalf("UpdateResearchRecord: %v", err)
	}
}
