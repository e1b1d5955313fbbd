// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex renders the final IEEE conference document from generated
// sections.
package latex

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/research-agent/pkg/types"
)

// RenderError reports a failed document render. Document rendering failure
// is fatal to the pipeline.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("rendering document: %v", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

// escapes is the ordered substitution table for LaTeX reserved characters.
// The backslash must come first so that backslashes introduced by the later
// substitutions are not escaped again; the braces emitted by the backslash
// replacement are intentionally picked up by the brace rules, matching the
// documented non-idempotent behavior.
var escapes = []struct {
	from string
	to   string
}{
	{`\`, `\textbackslash{}`},
	{`&`, `\&`},
	{`%`, `\%`},
	{`$`, `\$`},
	{`#`, `\#`},
	{`^`, `\textasciicircum{}`},
	{`_`, `\_`},
	{`{`, `\{`},
	{`}`, `\}`},
	{`~`, `\textasciitilde{}`},
}

// Escape substitutes LaTeX reserved characters in fixed order, then replaces
// line breaks with the explicit LaTeX line-break sequence. Pure function;
// deliberately not idempotent.
func Escape(text string) string {
	for _, e := range escapes {
		text = strings.ReplaceAll(text, e.from, e.to)
	}
	return strings.ReplaceAll(text, "\n", `\\`)
}

// FormatMethodology converts plain-text line breaks into LaTeX line breaks
// without touching reserved characters; the methodology section is escaped
// separately during rendering.
func FormatMethodology(text string) string {
	return strings.ReplaceAll(text, "\n", `\\`)
}

// documentTmpl is the fixed IEEE conference document structure. The Results
// and Conclusion sections are intentionally empty placeholders; the
// references block is inserted verbatim because it is already LaTeX.
var documentTmpl = template.Must(template.New("document").Parse(`\documentclass[conference]{IEEEtran}
\usepackage[utf8]{inputenc}
\usepackage{hyperref}
\usepackage{cite}
\hypersetup{
    colorlinks=true,
    linkcolor=blue,
    citecolor=blue,
    urlcolor=blue
}
\title{ {{- .Title -}} }

\newcommand{\linebreakand}{
  \end{@IEEEauthorhalign}
  \hfill\mbox{}\par
  \mbox{}\hfill\begin{@IEEEauthorhalign}
}

\author{
{{.Authors}}
}

\begin{document}
\maketitle

\begin{abstract}
\hspace{}{{.Abstract}}

\end{abstract}

\begin{IEEEkeywords}

\end{IEEEkeywords}

\section{Introduction}
\hspace{}{{.Introduction}}

\section{Literature Review}
\hspace{}{{.LiteratureReview}}

\section{Methodology}
\hspace{}{{.Methodology}}

\section{Results}


\section{Conclusion}


{{.References}}

\end{document}
`))

// documentFields carries pre-escaped values into the document template.
type documentFields struct {
	Title            string
	Authors          string
	Abstract         string
	Introduction     string
	LiteratureReview string
	Methodology      string
	References       string
}

// Render assembles the complete LaTeX document. All free-text fields are
// escaped; references are inserted verbatim. The authors slice fills the
// fixed author block.
func Render(topic, abstract, introduction, literatureReview, methodology, references string, authors []types.Author) (string, error) {
	fields := documentFields{
		Title:            Escape(topic),
		Authors:          authorBlock(authors),
		Abstract:         Escape(abstract),
		Introduction:     Escape(introduction),
		LiteratureReview: Escape(literatureReview),
		Methodology:      Escape(methodology),
		References:       references,
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, fields); err != nil {
		return "", &RenderError{Err: err}
	}
	return buf.String(), nil
}

// authorBlock formats one IEEEauthorblock entry per author, separated by
// \and. The separator is omitted after the last author.
func authorBlock(authors []types.Author) string {
	blocks := make([]string, 0, len(authors))
	for _, a := range authors {
		var b strings.Builder
		fmt.Fprintf(&b, "\\IEEEauthorblockN{%s}\n", a.Name)
		fmt.Fprintf(&b, "\\IEEEauthorblockA{%s\n", a.Department)
		fmt.Fprintf(&b, "\\\\%s\n", a.Institution)
		fmt.Fprintf(&b, "\\\\%s\n", a.Location)
		fmt.Fprintf(&b, "\\\\Email: %s}", a.Email)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\\and\n")
}
