// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-agent pipeline.
package types

// Paper is a literature-search result record. Papers are immutable once
// fetched; identity is the ID field.
type Paper struct {
	// Title is the paper title with internal whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Summary is the paper abstract with internal whitespace collapsed.
	Summary string `json:"summary" yaml:"summary"`

	// Authors is the comma-joined author display string ("" if none).
	Authors string `json:"authors" yaml:"authors"`

	// ID is the source URL of the paper (e.g. "http://arxiv.org/abs/2301.07041v1").
	ID string `json:"id" yaml:"id"`

	// Published is the publication date string exactly as the source
	// reported it.
	Published string `json:"published" yaml:"published"`
}

// PublishYear returns the first four characters of the publication date,
// or "" when no date is available.
func (p Paper) PublishYear() string {
	if len(p.Published) < 4 {
		return ""
	}
	return p.Published[:4]
}

// GenerationRequest is the caller-supplied input to one pipeline run.
// Immutable for the duration of the run.
type GenerationRequest struct {
	// Topic is the research topic.
	Topic string `json:"topic" yaml:"topic"`

	// Description is a brief description of the proposed work.
	Description string `json:"description" yaml:"description"`

	// MethodologyInput is optional human-provided methodology guidance.
	MethodologyInput string `json:"methodology_input,omitempty" yaml:"methodology_input,omitempty"`
}

// PipelineResult accumulates the output of one pipeline run. It is created
// empty at run start, owned and mutated exclusively by the orchestrator,
// and returned once the run finishes. Never shared across runs.
type PipelineResult struct {
	// RunID uniquely identifies this pipeline invocation.
	RunID string `json:"run_id" yaml:"run_id"`

	// Topic and Description echo the request.
	Topic       string `json:"topic" yaml:"topic"`
	Description string `json:"description" yaml:"description"`

	// Papers lists the fetched literature, in source order.
	Papers []Paper `json:"papers" yaml:"papers"`

	// Generated sections.
	Abstract         string `json:"abstract" yaml:"abstract"`
	Introduction     string `json:"introduction" yaml:"introduction"`
	LiteratureReview string `json:"literature_review" yaml:"literature_review"`
	Methodology      string `json:"methodology" yaml:"methodology"`

	// References is the bibliography block wrapped in the thebibliography
	// envelope.
	References string `json:"references" yaml:"references"`

	// Citations lists numbered bibliographic entries. Citations[i]
	// corresponds to inline marker [i+1]; the ordering is positional and
	// must match the order references were generated in.
	Citations []string `json:"citations" yaml:"citations"`

	// LaTeX is the final rendered document.
	LaTeX string `json:"latex" yaml:"latex"`

	// FlowchartURL is the rendered methodology diagram URL ("" when
	// rendering failed or was skipped).
	FlowchartURL string `json:"flowchart_url" yaml:"flowchart_url"`

	// PublishURL is the published document location ("" when publishing
	// failed or was skipped).
	PublishURL string `json:"github_url,omitempty" yaml:"github_url,omitempty"`

	// Success reports whether the critical path completed.
	Success bool `json:"success" yaml:"success"`

	// Error holds the failure message when Success is false.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Author identifies a paper author in the rendered document's author block.
type Author struct {
	// Name is the author's display name.
	Name string `json:"name" yaml:"name"`

	// Department is the author's department or lab.
	Department string `json:"department" yaml:"department"`

	// Institution is the author's institutional affiliation.
	Institution string `json:"institution" yaml:"institution"`

	// Location is the institution's city and country.
	Location string `json:"location" yaml:"location"`

	// Email is the author's contact address.
	Email string `json:"email" yaml:"email"`
}
