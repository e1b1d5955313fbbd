// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-agent/pkg/types"
)

// sectionColumns maps research-record field names to SQLite column names.
var sectionColumns = map[string]string{
	FieldAbstract:         "abstract",
	FieldIntroduction:     "introduction",
	FieldLiteratureReview: "literature_review",
	FieldMethodology:      "methodology",
	FieldResults:          "results",
	FieldConclusion:       "conclusion",
}

// SQLiteStore keeps records in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path, creating the schema
// if it does not exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reference_papers (
			id TEXT PRIMARY KEY,
			title TEXT,
			summary TEXT,
			authors TEXT,
			link TEXT,
			topic TEXT NOT NULL,
			description TEXT,
			publish_date TEXT,
			created_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reference_papers_topic ON reference_papers(topic)`,
		`CREATE TABLE IF NOT EXISTS research_papers (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL UNIQUE,
			abstract TEXT,
			introduction TEXT,
			literature_review TEXT,
			methodology TEXT,
			results TEXT,
			conclusion TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// CreateReferencePaper inserts one paper row keyed by a fresh UUID.
func (s *SQLiteStore) CreateReferencePaper(ctx context.Context, paper types.Paper, topic, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reference_papers (id, title, summary, authors, link, topic, description, publish_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), paper.Title, paper.Summary, paper.Authors, paper.ID,
		topic, description, paper.Published, now(),
	)
	if err != nil {
		return &PersistenceError{Op: "create reference paper", Err: err}
	}
	return nil
}

// CreateResearchRecord creates an empty record for the topic. Re-running a
// topic reuses the existing record rather than failing on the unique key.
func (s *SQLiteStore) CreateResearchRecord(ctx context.Context, topic string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO research_papers (id, topic, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(topic) DO NOTHING`,
		uuid.NewString(), topic, now(), now(),
	)
	if err != nil {
		return &PersistenceError{Op: "create research record", Err: err}
	}
	return nil
}

// UpdateResearchRecord fills section columns on the record matching topic.
// A missing record is an error, matching the external-store behavior.
func (s *SQLiteStore) UpdateResearchRecord(ctx context.Context, topic string, sections map[string]string) error {
	filtered := filterSections(sections)
	if len(filtered) == 0 {
		return nil
	}

	var assignments []string
	var args []any
	for field, value := range filtered {
		assignments = append(assignments, sectionColumns[field]+" = ?")
		args = append(args, value)
	}
	assignments = append(assignments, "updated_at = ?")
	args = append(args, now(), topic)

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE research_papers SET %s WHERE topic = ?`, strings.Join(assignments, ", ")),
		args...,
	)
	if err != nil {
		return &PersistenceError{Op: "update research record", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &PersistenceError{Op: "update research record", Err: fmt.Errorf("no record found with topic: %s", topic)}
	}
	return nil
}

// ReferencePapersByTopic returns every paper recorded under topic, oldest
// first.
func (s *SQLiteStore) ReferencePapersByTopic(ctx context.Context, topic string) ([]types.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, summary, authors, link, publish_date
		 FROM reference_papers WHERE topic = ? ORDER BY created_at`,
		topic,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "query reference papers", Err: err}
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		var p types.Paper
		if err := rows.Scan(&p.Title, &p.Summary, &p.Authors, &p.ID, &p.Published); err != nil {
			return nil, &PersistenceError{Op: "scan reference paper", Err: err}
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "query reference papers", Err: err}
	}
	return papers, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
