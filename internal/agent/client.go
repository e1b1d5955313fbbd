// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent wraps purpose-specific calls to a chat-completion service.
// Each agent serializes its inputs into a structured prompt, issues one
// completion request with a fixed role instruction, and post-processes the
// generated text where the pipeline requires it.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/research-agent/internal/httputil"
	"github.com/pdiddy/research-agent/pkg/types"
)

// DefaultBaseURL is the OpenAI-compatible API base used when the
// configuration does not name one.
const DefaultBaseURL = "https://api.openai.com/v1"

// GenerationError reports a failed text-generation call, identifying which
// agent failed. Generation failures abort the pipeline.
type GenerationError struct {
	Agent string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("agent %s: %v", e.Agent, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Completer issues one chat-completion request. Agents depend on this
// interface so tests can supply a mock.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client implements Completer against an OpenAI-compatible
// chat-completions endpoint.
type Client struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxRetries  int
	HTTPClient  *http.Client
}

// NewClient builds a Client from configuration, applying defaults for the
// base URL and HTTP timeout.
func NewClient(cfg types.AgentConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		BaseURL:     baseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxRetries:  cfg.MaxRetries,
		HTTPClient:  &http.Client{Timeout: timeout},
	}
}

// Chat-completion wire structures.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends one completion request and returns the first choice's
// message content. The system message is omitted when empty.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	var messages []chatMessage
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})

	reqBody := chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: c.Temperature,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if cResp.Error != nil {
		return "", fmt.Errorf("completion API error: %s", cResp.Error.Message)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return cResp.Choices[0].Message.Content, nil
}

// generate runs one completion for the named agent, wrapping any failure
// in a GenerationError.
func generate(ctx context.Context, c Completer, name, system, user string) (string, error) {
	out, err := c.Complete(ctx, system, user)
	if err != nil {
		return "", &GenerationError{Agent: name, Err: err}
	}
	return out, nil
}
