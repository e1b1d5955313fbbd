// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation weaves numbered citation markers into generated prose
// and converts them to LaTeX citation syntax.
package citation

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/agent"
)

const weaveSystem = `You are an academic assistant. Given a paragraph and a list of references in IEEE format, insert relevant inline citations using [1], [2], etc. Do not make up citations. Only use the provided reference list. If unsure, skip citing.`

// markerPattern matches bracket-numbered inline citations: [1], [12], ...
var markerPattern = regexp.MustCompile(`\[(\d+)\]`)

// Processor inserts inline citation markers via an external completion
// service. A nil Completer disables weaving entirely.
type Processor struct {
	C      agent.Completer
	Logger *zap.Logger
}

// NewProcessor returns a Processor. Either argument may be nil.
func NewProcessor(c agent.Completer, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{C: c, Logger: logger}
}

// Weave asks the completion service to insert bracket-numbered citation
// markers into text, citing only entries from references. Weaving is
// non-critical: with no service configured the input is returned unchanged,
// and any service error is logged and degrades to the original text.
func (p *Processor) Weave(ctx context.Context, text, references string) string {
	if p.C == nil {
		return text
	}

	prompt := "Paragraph:\n" + text + "\n\nReferences:" + references
	cited, err := p.C.Complete(ctx, weaveSystem, prompt)
	if err != nil {
		p.Logger.Warn("citation weaving failed, keeping original text", zap.Error(err))
		return text
	}
	return cited
}

// ConvertToLaTeX rewrites every [N] marker to \cite{rN}. The reference tag
// matches the \bibitem{rN} labels the reference agent emits, so marker
// numbering must stay positional. Text without bracket markers passes
// through unchanged.
func ConvertToLaTeX(text string) string {
	return markerPattern.ReplaceAllString(text, `\cite{r$1}`)
}
