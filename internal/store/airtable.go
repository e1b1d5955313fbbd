// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pdiddy/research-agent/pkg/types"
)

// AirtableBase is the Airtable REST endpoint. Declared as a var so tests
// can substitute an httptest server.
var AirtableBase = "https://api.airtable.com/v0"

// AirtableStore keeps records in two Airtable tables: one for reference
// papers, one for research records.
type AirtableStore struct {
	APIKey           string
	BaseID           string
	ReferenceTableID string
	ResearchTableID  string
	Client           *http.Client
}

// NewAirtableStore builds a store from configuration.
func NewAirtableStore(cfg types.StoreConfig) *AirtableStore {
	return &AirtableStore{
		APIKey:           cfg.APIKey,
		BaseID:           cfg.BaseID,
		ReferenceTableID: cfg.ReferenceTableID,
		ResearchTableID:  cfg.ResearchTableID,
		Client:           &http.Client{Timeout: cfg.Timeout},
	}
}

// Close is a no-op; the Airtable client holds no resources.
func (s *AirtableStore) Close() error { return nil }

// Airtable wire structures.
type airtableRecord struct {
	ID     string            `json:"id,omitempty"`
	Fields map[string]string `json:"fields"`
}

type airtableList struct {
	Records []airtableRecord `json:"records"`
}

// CreateReferencePaper creates one row in the reference table.
func (s *AirtableStore) CreateReferencePaper(ctx context.Context, paper types.Paper, topic, description string) error {
	fields := map[string]string{
		"Title":        paper.Title,
		"Summary":      paper.Summary,
		"Authors":      paper.Authors,
		"Link":         paper.ID,
		"Topic":        topic,
		"Description":  description,
		"Publish Date": paper.Published,
	}
	if _, err := s.do(ctx, http.MethodPost, s.tableURL(s.ReferenceTableID), airtableRecord{Fields: fields}); err != nil {
		return &PersistenceError{Op: "create reference paper", Err: err}
	}
	return nil
}

// CreateResearchRecord creates an empty research row keyed by topic.
func (s *AirtableStore) CreateResearchRecord(ctx context.Context, topic string) error {
	rec := airtableRecord{Fields: map[string]string{"Topic Name": topic}}
	if _, err := s.do(ctx, http.MethodPost, s.tableURL(s.ResearchTableID), rec); err != nil {
		return &PersistenceError{Op: "create research record", Err: err}
	}
	return nil
}

// UpdateResearchRecord finds the record whose Topic Name matches exactly
// and patches its section fields.
func (s *AirtableStore) UpdateResearchRecord(ctx context.Context, topic string, sections map[string]string) error {
	filtered := filterSections(sections)
	if len(filtered) == 0 {
		return nil
	}

	records, err := s.list(ctx, s.ResearchTableID, fmt.Sprintf("{Topic Name} = '%s'", topic))
	if err != nil {
		return &PersistenceError{Op: "update research record", Err: err}
	}
	if len(records) == 0 {
		return &PersistenceError{Op: "update research record", Err: fmt.Errorf("no record found with topic: %s", topic)}
	}

	target := s.tableURL(s.ResearchTableID) + "/" + records[0].ID
	if _, err := s.do(ctx, http.MethodPatch, target, airtableRecord{Fields: filtered}); err != nil {
		return &PersistenceError{Op: "update research record", Err: err}
	}
	return nil
}

// ReferencePapersByTopic returns every reference row whose Topic matches
// exactly.
func (s *AirtableStore) ReferencePapersByTopic(ctx context.Context, topic string) ([]types.Paper, error) {
	records, err := s.list(ctx, s.ReferenceTableID, fmt.Sprintf("{Topic} = '%s'", topic))
	if err != nil {
		return nil, &PersistenceError{Op: "query reference papers", Err: err}
	}

	papers := make([]types.Paper, 0, len(records))
	for _, rec := range records {
		papers = append(papers, types.Paper{
			Title:     rec.Fields["Title"],
			Summary:   rec.Fields["Summary"],
			Authors:   rec.Fields["Authors"],
			ID:        rec.Fields["Link"],
			Published: rec.Fields["Publish Date"],
		})
	}
	return papers, nil
}

func (s *AirtableStore) tableURL(tableID string) string {
	return fmt.Sprintf("%s/%s/%s", AirtableBase, s.BaseID, tableID)
}

// list fetches records matching an exact-match filter formula.
func (s *AirtableStore) list(ctx context.Context, tableID, formula string) ([]airtableRecord, error) {
	target := s.tableURL(tableID) + "?filterByFormula=" + url.QueryEscape(formula)
	body, err := s.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	var list airtableList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding record list: %w", err)
	}
	return list.Records, nil
}

// do issues one Airtable API request and returns the response body.
func (s *AirtableStore) do(ctx context.Context, method, target string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling record: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airtable API request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("airtable API returned %d: %s", resp.StatusCode, string(data))
	}
	return data, nil
}
