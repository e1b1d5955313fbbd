// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/research-agent/pkg/types"
)

func newChatServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("messages = %+v, want system then user", req.Messages)
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: reply}}},
		})
	}))
}

func testClient(ts *httptest.Server) *Client {
	return &Client{
		BaseURL:     ts.URL,
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.7,
		HTTPClient:  ts.Client(),
	}
}

func TestClientComplete(t *testing.T) {
	ts := newChatServer(t, "generated text", http.StatusOK)
	defer ts.Close()

	out, err := testClient(ts).Complete(context.Background(), "system msg", "user msg")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "generated text" {
		t.Errorf("out = %q", out)
	}
}

func TestClientCompleteServerError(t *testing.T) {
	ts := newChatServer(t, "", http.StatusInternalServerError)
	defer ts.Close()

	_, err := testClient(ts).Complete(context.Background(), "system msg", "user msg")
	if err == nil {
		t.Fatal("want error on HTTP 500")
	}
}

func TestClientCompleteNoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer ts.Close()

	c := testClient(ts)
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("want error on empty choices")
	}
}

func TestClientCompleteOmitsEmptySystem(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want single user message", req.Messages)
		}
		json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Content: "ok"}}},
		})
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, Model: "m", HTTPClient: ts.Client()}
	if _, err := c.Complete(context.Background(), "", "just user"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.AgentConfig{})
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.HTTPClient == nil || c.HTTPClient.Timeout <= 0 {
		t.Error("expected a bounded default timeout")
	}
}
