// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish commits rendered documents to a GitHub repository
// through the contents API.
package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/research-agent/pkg/types"
)

// APIBase is the GitHub REST endpoint. Declared as a var so tests can
// substitute an httptest server.
var APIBase = "https://api.github.com"

// PublishError wraps failures while committing a document.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string { return fmt.Sprintf("publishing document: %v", e.Err) }
func (e *PublishError) Unwrap() error { return e.Err }

// Publisher commits LaTeX documents under docs/ in a repository.
type Publisher struct {
	Token  string
	Owner  string
	Repo   string
	Branch string
	Client *http.Client
}

// NewPublisher builds a publisher from configuration. The branch defaults
// to "main".
func NewPublisher(cfg types.PublishConfig) *Publisher {
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	return &Publisher{
		Token:  cfg.Token,
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Branch: branch,
		Client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Enabled reports whether the publisher has credentials to commit with.
func (p *Publisher) Enabled() bool { return p.Token != "" && p.Owner != "" && p.Repo != "" }

// SanitizeTopic turns a free-form topic into a filename stem: letters,
// digits, spaces, hyphens and underscores survive, then spaces become
// underscores.
func SanitizeTopic(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

type contentsResponse struct {
	SHA string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// Publish commits document as docs/<topic>.tex and returns the browser URL
// of the committed file. An existing file at the path is updated in place.
func (p *Publisher) Publish(ctx context.Context, topic, document string) (string, error) {
	name := SanitizeTopic(topic)
	if name == "" {
		return "", &PublishError{Err: fmt.Errorf("topic %q yields an empty filename", topic)}
	}
	path := "docs/" + name + ".tex"

	sha, err := p.existingSHA(ctx, path)
	if err != nil {
		return "", &PublishError{Err: err}
	}

	payload := putRequest{
		Message: fmt.Sprintf("Research paper: %s", topic),
		Content: base64.StdEncoding.EncodeToString([]byte(document)),
		SHA:     sha,
		Branch:  p.Branch,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &PublishError{Err: fmt.Errorf("marshaling commit: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return "", &PublishError{Err: fmt.Errorf("creating request: %w", err)}
	}
	p.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client().Do(req)
	if err != nil {
		return "", &PublishError{Err: fmt.Errorf("GitHub API request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return "", &PublishError{Err: fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(data))}
	}

	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s", p.Owner, p.Repo, p.Branch, path), nil
}

// existingSHA returns the blob SHA of path if the file already exists, or
// the empty string for a fresh file.
func (p *Publisher) existingSHA(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.contentsURL(path), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	p.authorize(req)

	resp, err := p.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("GitHub API request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var contents contentsResponse
		if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
			return "", fmt.Errorf("decoding contents: %w", err)
		}
		return contents.SHA, nil
	case http.StatusNotFound:
		return "", nil
	default:
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(data))
	}
}

func (p *Publisher) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", APIBase, p.Owner, p.Repo, path)
}

func (p *Publisher) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

func (p *Publisher) client() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}
