// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"context"
	"testing"

	"github.com/pdiddy/research-agent/pkg/types"
)

func TestRequestNeverBlocks(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.NotifyConfig
	}{
		{"disabled", types.NotifyConfig{}},
		{"enabled", types.NotifyConfig{Recipient: "reviewer@example.com", Credentials: "creds"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewEmailRequester(tc.cfg, nil)
			input, err := r.Request(context.Background(), "Edge Computing", "An abstract.")
			if err != nil {
				t.Fatalf("Request: %v", err)
			}
			if input != "" {
				t.Errorf("input = %q, want empty", input)
			}
		})
	}
}

func TestEnabledFollowsCredentials(t *testing.T) {
	if NewEmailRequester(types.NotifyConfig{}, nil).Enabled {
		t.Error("requester enabled without credentials")
	}
	if !NewEmailRequester(types.NotifyConfig{Credentials: "creds"}, nil).Enabled {
		t.Error("requester disabled despite credentials")
	}
}
