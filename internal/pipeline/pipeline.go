// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the stages that turn a research topic into a
// complete draft paper: literature fetch, staged generation, citation
// weaving, document assembly, and best-effort persistence and publication.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/agent"
	"github.com/pdiddy/research-agent/internal/arxiv"
	"github.com/pdiddy/research-agent/internal/citation"
	"github.com/pdiddy/research-agent/internal/diagram"
	"github.com/pdiddy/research-agent/internal/latex"
	"github.com/pdiddy/research-agent/internal/notify"
	"github.com/pdiddy/research-agent/internal/publish"
	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/internal/store"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Fetcher retrieves papers related to a topic.
type Fetcher interface {
	Fetch(ctx context.Context, topic string, maxResults int) ([]types.Paper, error)
}

// Weaver inserts inline citation markers into a section. Implementations
// degrade to returning text unchanged and never fail.
type Weaver interface {
	Weave(ctx context.Context, text, references string) string
}

// Publisher commits a document and returns its browser URL.
type Publisher interface {
	Enabled() bool
	Publish(ctx context.Context, topic, document string) (string, error)
}

// Pipeline runs one linear generation sequence per Execute call. The
// store, publisher and requester collaborators may be nil; the
// corresponding steps are skipped.
type Pipeline struct {
	Fetcher    Fetcher
	Completer  agent.Completer
	Weaver     Weaver
	Store      store.Store
	Publisher  Publisher
	Requester  notify.MethodologyRequester
	Authors    []types.Author
	MaxResults int
	Logger     *zap.Logger
}

// New wires a pipeline from configuration. Secret files override nothing:
// values set in the configuration win over the secrets directory.
func New(cfg types.PipelineConfig, sec map[string]string, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg.Agents.APIKey = secrets.Fallback(sec, secrets.KeyOpenAI, cfg.Agents.APIKey)
	cfg.Citation.APIKey = secrets.Fallback(sec, secrets.KeyOpenRouter, cfg.Citation.APIKey)
	cfg.Store.APIKey = secrets.Fallback(sec, secrets.KeyAirtable, cfg.Store.APIKey)
	cfg.Publish.Token = secrets.Fallback(sec, secrets.KeyGitHub, cfg.Publish.Token)
	cfg.Notify.Credentials = secrets.Fallback(sec, secrets.KeyGmail, cfg.Notify.Credentials)

	p := &Pipeline{
		Fetcher: &arxiv.Fetcher{
			Client:    &http.Client{Timeout: cfg.Fetch.Timeout},
			UserAgent: cfg.Fetch.UserAgent,
		},
		Completer:  agent.NewClient(cfg.Agents),
		Authors:    cfg.Authors,
		MaxResults: cfg.Fetch.MaxResults,
		Logger:     logger,
	}

	var weaveCompleter agent.Completer
	if cfg.Citation.APIKey != "" {
		weaveCompleter = agent.NewClient(types.AgentConfig{
			AIConfig:   cfg.Citation.AIConfig,
			HTTPConfig: cfg.Citation.HTTPConfig,
		})
	}
	p.Weaver = citation.NewProcessor(weaveCompleter, logger)

	switch cfg.Store.Backend {
	case types.StoreSQLite:
		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("opening record store: %w", err)
		}
		p.Store = s
	case types.StoreAirtable:
		p.Store = store.NewAirtableStore(cfg.Store)
	}

	if pub := publish.NewPublisher(cfg.Publish); pub.Enabled() {
		p.Publisher = pub
	}
	p.Requester = notify.NewEmailRequester(cfg.Notify, logger)

	return p, nil
}

// Close releases the pipeline's store, if any.
func (p *Pipeline) Close() error {
	if p.Store != nil {
		return p.Store.Close()
	}
	return nil
}

// Execute runs the full generation sequence and always returns a result:
// a fatal stage failure is recorded in the result's Error field, never
// returned as a bare error. Best-effort stages (persistence, publication)
// log their failures and never abort the run.
func (p *Pipeline) Execute(ctx context.Context, req types.GenerationRequest) *types.PipelineResult {
	res := &types.PipelineResult{
		RunID:       uuid.NewString(),
		Topic:       req.Topic,
		Description: req.Description,
	}
	log := p.Logger.With(zap.String("run_id", res.RunID), zap.String("topic", req.Topic))
	fail := func(err error) *types.PipelineResult {
		log.Error("pipeline aborted", zap.Error(err))
		res.Error = err.Error()
		return res
	}

	log.Info("starting pipeline run")

	papers, err := p.Fetcher.Fetch(ctx, req.Topic, p.MaxResults)
	if err != nil {
		return fail(err)
	}
	res.Papers = papers
	log.Info("fetched papers", zap.Int("count", len(papers)))

	p.bestEffort(log, "persist reference papers", func() error {
		if p.Store == nil {
			return nil
		}
		for _, paper := range papers {
			if err := p.Store.CreateReferencePaper(ctx, paper, req.Topic, req.Description); err != nil {
				return err
			}
		}
		return p.Store.CreateResearchRecord(ctx, req.Topic)
	})

	res.Abstract, err = agent.AbstractWriter{C: p.Completer}.Write(ctx, req.Topic, req.Description, papers)
	if err != nil {
		return fail(err)
	}

	introduction, err := agent.IntroductionWriter{C: p.Completer}.Write(ctx, req.Topic, req.Description, papers)
	if err != nil {
		return fail(err)
	}

	res.LiteratureReview, err = agent.LiteratureReviewer{C: p.Completer}.Write(ctx, req.Topic, req.Description, papers)
	if err != nil {
		return fail(err)
	}

	res.References, err = agent.ReferenceAgent{C: p.Completer}.Generate(ctx, papers)
	if err != nil {
		return fail(err)
	}

	res.Citations, err = agent.CitationAgent{C: p.Completer}.Generate(ctx, papers)
	if err != nil {
		return fail(err)
	}

	// The weaving model sees the [N]-numbered citation list, not the
	// bibliography envelope, so inline markers stay positionally aligned.
	woven := p.Weaver.Weave(ctx, introduction, strings.Join(res.Citations, "\n"))
	res.Introduction = citation.ConvertToLaTeX(woven)

	humanInput := req.MethodologyInput
	if humanInput == "" && p.Requester != nil {
		input, err := p.Requester.Request(ctx, req.Topic, res.Abstract)
		if err != nil {
			log.Warn("methodology input request failed", zap.Error(err))
		}
		humanInput = input
	}

	res.Methodology, err = agent.MethodologyAgent{C: p.Completer}.Write(ctx, req.Topic, res.Abstract, res.LiteratureReview, humanInput)
	if err != nil {
		return fail(err)
	}

	// Flowchart generation is on the critical path; only URL rendering
	// degrades to an empty reference.
	dot, err := agent.FlowchartAgent{C: p.Completer}.Generate(ctx, res.Methodology)
	if err != nil {
		return fail(err)
	}
	res.FlowchartURL = diagram.RenderURL(dot)

	res.LaTeX, err = latex.Render(req.Topic, res.Abstract, res.Introduction, res.LiteratureReview,
		latex.FormatMethodology(res.Methodology), res.References, p.Authors)
	if err != nil {
		return fail(err)
	}

	p.bestEffort(log, "update research record", func() error {
		if p.Store == nil {
			return nil
		}
		return p.Store.UpdateResearchRecord(ctx, req.Topic, map[string]string{
			store.FieldAbstract:         res.Abstract,
			store.FieldIntroduction:     res.Introduction,
			store.FieldLiteratureReview: res.LiteratureReview,
			store.FieldMethodology:      latex.FormatMethodology(res.Methodology),
		})
	})

	p.bestEffort(log, "publish document", func() error {
		if p.Publisher == nil || !p.Publisher.Enabled() {
			return nil
		}
		url, err := p.Publisher.Publish(ctx, req.Topic, res.LaTeX)
		if err != nil {
			return err
		}
		res.PublishURL = url
		return nil
	})

	res.Success = true
	log.Info("pipeline run complete", zap.String("publish_url", res.PublishURL))
	return res
}

// bestEffort runs a non-critical stage: failures are logged and swallowed
// so the run always continues.
func (p *Pipeline) bestEffort(log *zap.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn("non-critical step failed", zap.String("step", name), zap.Error(err))
	}
}
