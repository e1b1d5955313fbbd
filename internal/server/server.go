// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the generation pipeline over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/store"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Runner executes one generation run. Satisfied by pipeline.Pipeline.
type Runner interface {
	Execute(ctx context.Context, req types.GenerationRequest) *types.PipelineResult
}

// Server routes HTTP requests to the pipeline.
type Server struct {
	Runner Runner
	Store  store.Store
	Logger *zap.Logger
}

// New builds a server around a pipeline runner. The store may be nil; the
// paper-lookup endpoint then reports the backend as unavailable.
func New(runner Runner, st store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Runner: runner, Store: st, Logger: logger}
}

// researchRequest is the JSON body accepted by POST /research.
type researchRequest struct {
	Topic            string `json:"topic" binding:"required"`
	Description      string `json:"description"`
	MethodologyInput string `json:"methodology_input"`
}

// researchResponse is the structured result returned by both research
// endpoints. Pipeline failures still produce this shape with success=false.
type researchResponse struct {
	Success          bool   `json:"success"`
	Topic            string `json:"topic"`
	Abstract         string `json:"abstract"`
	Introduction     string `json:"introduction"`
	LiteratureReview string `json:"literature_review"`
	Methodology      string `json:"methodology"`
	References       string `json:"references"`
	LaTeX            string `json:"latex"`
	FlowchartURL     string `json:"flowchart_url"`
	PublishURL       string `json:"github_url"`
	Error            string `json:"error,omitempty"`
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler(mode string) http.Handler {
	if mode != "" {
		gin.SetMode(mode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	engine.POST("/research", s.handleResearch)
	engine.POST("/research/form", s.handleResearchForm)
	engine.GET("/papers", s.handlePapers)

	return engine
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr, mode string) error {
	s.Logger.Info("serving research API", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler(mode))
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "research-agent", "status": "ok"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleResearch(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	s.runPipeline(c, req)
}

// handleResearchForm accepts the same fields as form or query parameters.
func (s *Server) handleResearchForm(c *gin.Context) {
	req := researchRequest{
		Topic:            c.PostForm("topic"),
		Description:      c.PostForm("description"),
		MethodologyInput: c.PostForm("methodology_input"),
	}
	if req.Topic == "" {
		req.Topic = c.Query("topic")
		req.Description = c.Query("description")
		req.MethodologyInput = c.Query("methodology_input")
	}
	if req.Topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	s.runPipeline(c, req)
}

func (s *Server) runPipeline(c *gin.Context, req researchRequest) {
	res := s.Runner.Execute(c.Request.Context(), types.GenerationRequest{
		Topic:            req.Topic,
		Description:      req.Description,
		MethodologyInput: req.MethodologyInput,
	})

	c.JSON(http.StatusOK, researchResponse{
		Success:          res.Success,
		Topic:            res.Topic,
		Abstract:         res.Abstract,
		Introduction:     res.Introduction,
		LiteratureReview: res.LiteratureReview,
		Methodology:      res.Methodology,
		References:       res.References,
		LaTeX:            res.LaTeX,
		FlowchartURL:     res.FlowchartURL,
		PublishURL:       res.PublishURL,
		Error:            res.Error,
	})
}

// handlePapers returns previously fetched reference papers for a topic.
func (s *Server) handlePapers(c *gin.Context) {
	topic := c.Query("topic")
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no record store configured"})
		return
	}

	papers, err := s.Store.ReferencePapersByTopic(c.Request.Context(), topic)
	if err != nil {
		s.Logger.Error("paper lookup failed", zap.String("topic", topic), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic, "papers": papers})
}
