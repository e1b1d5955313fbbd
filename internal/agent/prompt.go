// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-agent/pkg/types"
)

// maxPromptPapers bounds how many papers are serialized into any prompt.
// Fetches may return more; the surplus is silently truncated.
const maxPromptPapers = 5

// truncatePapers returns at most maxPromptPapers papers.
func truncatePapers(papers []types.Paper) []types.Paper {
	if len(papers) > maxPromptPapers {
		return papers[:maxPromptPapers]
	}
	return papers
}

// summaryPrompt serializes topic, description and paper summaries into the
// prompt body shared by the abstract, introduction, and literature-review
// agents. The field order (Title, Summary, Authors) is part of the contract
// the role instructions are written against; do not reorder.
func summaryPrompt(topic, description string, papers []types.Paper, includeAuthors bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic of Research: %s\n", topic)
	fmt.Fprintf(&b, "Description of Research: %s\n", description)
	b.WriteString("Summary of Papers:\n")

	for i, p := range truncatePapers(papers) {
		fmt.Fprintf(&b, "%d.\n", i+1)
		fmt.Fprintf(&b, "Title : %s\n", p.Title)
		fmt.Fprintf(&b, "Summary : %s\n", p.Summary)
		if includeAuthors {
			fmt.Fprintf(&b, "Authors : %s\n\n", p.Authors)
		}
	}
	return b.String()
}

// referencePrompt serializes the bibliographic fields of up to five papers
// for the reference and citation agents.
func referencePrompt(papers []types.Paper) string {
	var b strings.Builder
	b.WriteString("Reference Papers :\n")

	for i, p := range truncatePapers(papers) {
		fmt.Fprintf(&b, "%d.\n", i+1)
		fmt.Fprintf(&b, "Title : %s\n", p.Title)
		fmt.Fprintf(&b, "Author : %s\n", p.Authors)
		fmt.Fprintf(&b, "Link : %s\n", p.ID)
		fmt.Fprintf(&b, "Publish year : %s\n", p.PublishYear())
	}
	return b.String()
}

// CleanFenced strips Markdown code-fence markers from generated output and
// converts literal "\n" escape sequences into real newlines. Generation
// services wrap LaTeX and DOT output in fences inconsistently, so every
// consumer of fenced output runs this first.
func CleanFenced(s string) string {
	s = strings.ReplaceAll(s, "```latex", "")
	s = strings.ReplaceAll(s, "```dot", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, `\n`, "\n")
}
