// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify requests human input for the methodology section. The
// channel is best effort: a pipeline run never blocks on it.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/pkg/types"
)

// MethodologyRequester asks a human for methodology input on a topic.
// Request returns whatever input is already available; implementations
// must not block waiting for a reply.
type MethodologyRequester interface {
	Request(ctx context.Context, topic, abstract string) (string, error)
}

// EmailRequester records methodology requests destined for a human
// reviewer. Sending is stubbed: the request is logged and the pipeline
// continues with whatever input the caller supplied up front.
type EmailRequester struct {
	Recipient string
	Enabled   bool
	Logger    *zap.Logger
}

// NewEmailRequester builds a requester from configuration. The channel is
// enabled only when credentials are present.
func NewEmailRequester(cfg types.NotifyConfig, logger *zap.Logger) *EmailRequester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailRequester{
		Recipient: cfg.Recipient,
		Enabled:   cfg.Credentials != "",
		Logger:    logger,
	}
}

// Request logs the outgoing request and returns immediately with no input.
func (r *EmailRequester) Request(ctx context.Context, topic, abstract string) (string, error) {
	if !r.Enabled {
		r.Logger.Debug("methodology request channel disabled", zap.String("topic", topic))
		return "", nil
	}
	r.Logger.Info("requesting methodology input",
		zap.String("topic", topic),
		zap.String("recipient", r.Recipient),
	)
	return "", nil
}
