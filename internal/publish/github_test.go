// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/research-agent/pkg/types"
)

func swapAPIBase(t *testing.T, base string) {
	t.Helper()
	orig := APIBase
	APIBase = base
	t.Cleanup(func() { APIBase = orig })
}

func newTestPublisher() *Publisher {
	return NewPublisher(types.PublishConfig{
		Token:  "ghp_test",
		Owner:  "pdiddy",
		Repo:   "papers",
		Branch: "main",
	})
}

func TestSanitizeTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Edge Computing", "Edge_Computing"},
		{"Edge Computing!?", "Edge_Computing"},
		{"multi-agent systems", "multi-agent_systems"},
		{"  padded  ", "padded"},
		{"naïve Bayes", "nave_Bayes"},
		{"///", ""},
	}
	for _, tc := range tests {
		if got := SanitizeTopic(tc.topic); got != tc.want {
			t.Errorf("SanitizeTopic(%q) = %q, want %q", tc.topic, got, tc.want)
		}
	}
}

func TestPublishNewFile(t *testing.T) {
	var putBody putRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/pdiddy/papers/contents/docs/Edge_Computing.tex" {
			t.Errorf("path = %q", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			http.NotFound(w, r)
		case http.MethodPut:
			if auth := r.Header.Get("Authorization"); auth != "Bearer ghp_test" {
				t.Errorf("authorization = %q", auth)
			}
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &putBody)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"content":{"sha":"abc"}}`))
		}
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	url, err := newTestPublisher().Publish(context.Background(), "Edge Computing", `\documentclass{article}`)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	want := "https://github.com/pdiddy/papers/blob/main/docs/Edge_Computing.tex"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
	if putBody.Message != "Research paper: Edge Computing" {
		t.Errorf("commit message = %q", putBody.Message)
	}
	if putBody.SHA != "" {
		t.Errorf("sha = %q, want empty for new file", putBody.SHA)
	}
	decoded, err := base64.StdEncoding.DecodeString(putBody.Content)
	if err != nil || string(decoded) != `\documentclass{article}` {
		t.Errorf("content = %q (decode err %v)", decoded, err)
	}
}

func TestPublishExistingFile(t *testing.T) {
	var putBody putRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"sha":"oldsha123"}`))
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &putBody)
			w.Write([]byte(`{"content":{"sha":"newsha"}}`))
		}
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	if _, err := newTestPublisher().Publish(context.Background(), "Edge Computing", "doc"); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if putBody.SHA != "oldsha123" {
		t.Errorf("sha = %q, want oldsha123", putBody.SHA)
	}
}

func TestPublishAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			http.NotFound(w, r)
			return
		}
		http.Error(w, `{"message":"Validation Failed"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()
	swapAPIBase(t, server.URL)

	_, err := newTestPublisher().Publish(context.Background(), "Edge Computing", "doc")
	var perr *PublishError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *PublishError", err)
	}
}

func TestPublishEmptyTopic(t *testing.T) {
	_, err := newTestPublisher().Publish(context.Background(), "!!!", "doc")
	var perr *PublishError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *PublishError", err)
	}
}

func TestEnabled(t *testing.T) {
	if !newTestPublisher().Enabled() {
		t.Error("configured publisher should be enabled")
	}
	if NewPublisher(types.PublishConfig{}).Enabled() {
		t.Error("empty publisher should be disabled")
	}
}
