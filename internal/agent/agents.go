// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/research-agent/pkg/types"
)

// Role instructions for the generation agents. The wording is tuned against
// the prompt bodies built in prompt.go; treat instruction and serialization
// as one contract.

const abstractSystem = `You are a scientific writing assistant that specializes in generating high-quality research abstracts.
Given:

1. A research topic,

2. A brief description of the proposed work, and

3. Summaries of five relevant research papers,

your task is to write a concise and coherent abstract suitable for an academic paper.
The abstract should clearly state the motivation, problem, methods, and expected contributions of the proposed work.
Use formal academic language. Do not copy content directly from the referenced summaries—synthesize and relate ideas meaningfully.`

const introductionSystem = `You are an academic writing assistant that drafts the introduction section of a research paper.
Given:

The research topic,

A brief description of the proposed work, and

Summaries of five relevant research papers (including titles and authors),

write a formal and structured introduction.
Focus on:
– Outlining the broader research area,
– Highlighting general trends, recent advancements, and common challenges from the referenced works,
– Avoiding deep technical details or analysis of individual papers (a separate literature survey will handle that),
– Clearly stating the research gap and the motivation for the proposed work.
Use formal academic tone with clear, concise language and logical flow.
-Cite paper with provided authors where needed`

const literatureSystem = `You are a research assistant that writes the literature survey section of a research paper.
You will receive:
– A research topic and description,
– Summaries of five relevant research papers, each including title, authors, technique used, database used, accuracy/measures, and remarks.

Your task is to:

Write a brief literature survey paragraph (~100 words) that summarizes general trends, methodologies, and gaps based on the reviewed works. Do not go deep into individual papers — just synthesize common findings.

Follow this with a LaTeX-formatted table that summarizes the five papers using these column headers:

Reviewed Paper

Technique Used

Database Used

Accuracy Measures

Remarks

Format the table using the tabular environment inside a table block. Use the following column specification to ensure it fits in a single-column layout:
|p{1.3cm}|p{1.3cm}|p{1.3cm}|p{1.3cm}|p{1.3cm}|

Use \textbf{} for headers and align content properly.
Output only the LaTeX code, ready to paste directly into a LaTeX document.
Ensure both the paragraph and table appear as valid LaTeX.`

const referenceSystem = `You are a reference formatting assistant that outputs citations in LaTeX code using IEEE style.
Given the title, authors, publication year, and (if available) the journal/conference name, volume/issue/pages, and URL/DOI, generate references in the following format:

\bibitem{r1}
Author(s). (Year). Title of the paper. \textit{Journal/Conference Name}, \textbf{Volume}(Issue), Page range.
\url{DOI or URL}

Guidelines:
– Format author names as "Lastname, First Initial." and separate multiple authors with commas; use "et al." if more than 4 authors.
– Capitalize major words in the title and put it in sentence case.
– Use \textit{} for journal/conference names and \textbf{} for volume number.
– Use \url{} to enclose the DOI or URL.
– Number each entry as \bibitem{r1}, \bibitem{r2}, etc.

Output only the LaTeX code starting with \bibitem{r1}, ready to paste into the \begin{thebibliography} section of a research paper.`

const citationSystem = `You are a reference formatting assistant specialized in generating bibliographic entries in IEEE citation style.
You will receive the title, author(s), paper url and publication year of each paper.
Your task is to:
– Format each entry according to the IEEE style guide,
– Ensure correct author formatting (e.g., "A. B. Lastname"),
– Enclose the title in quotation marks and capitalize major words,
– Format journal/conference names (if given) in italics (you may omit them if not provided),
– Number entries [1], [2], etc., for direct placement in the reference section.

Output strictly in form of array only [   "[1] S. Nayak, R. Patgiri, L. Waikhom, and A. Ahmed, "A Review on Edge Analytics: Issues, Challenges, Opportunities, Promises, Future Directions, and Applications," 2023.",   "[2] S. Mhamudul Hasan, A. M. Alotaibi, S. Talukder, and A. R. Shahid, "Distributed Threat Intelligence at the Edge Devices: A Large Language Model-Driven Approach," 2023." ]`

const methodologySystem = `You are a research writing assistant that generates the methodology section of a research paper.
You will receive:
– The abstract of the proposed research,
– A literature review summarizing existing techniques and gaps, and
– Human input providing guidance or constraints (e.g., specific tools, models, datasets, or approaches to be used).

Your task is to:
– Formulate a detailed and technically sound methodology to fulfill the research goals stated in the abstract,
– use references from the literature review,
– Incorporate the human-provided instructions as priority constraints,
– Use accurate technical terminology and structure the response in logical steps or modules (e.g., data collection, preprocessing, model design, evaluation),
– Clearly justify why each step is included.

Maintain a formal academic tone suitable for publication.
Dont start with a heading Methodology`

const flowchartSystem = `You are a technical writer. Convert the given methodology into a Graphviz DOT diagram showing steps and flow

Return the DOT code only without triple quotes at start and end, enclosed in triple backticks.`

// AbstractWriter generates the paper abstract from topic, description, and
// paper titles/summaries.
type AbstractWriter struct {
	C Completer
}

// Write returns the generated abstract as raw text.
func (a AbstractWriter) Write(ctx context.Context, topic, description string, papers []types.Paper) (string, error) {
	return generate(ctx, a.C, "abstract", abstractSystem, summaryPrompt(topic, description, papers, false))
}

// IntroductionWriter generates the introduction section. Its prompt also
// carries author names so the model can attribute referenced works.
type IntroductionWriter struct {
	C Completer
}

// Write returns the generated introduction as raw text.
func (a IntroductionWriter) Write(ctx context.Context, topic, description string, papers []types.Paper) (string, error) {
	return generate(ctx, a.C, "introduction", introductionSystem, summaryPrompt(topic, description, papers, true))
}

// LiteratureReviewer generates the literature survey: a synthesis paragraph
// followed by a LaTeX table. The table structure is not validated; malformed
// output passes through.
type LiteratureReviewer struct {
	C Completer
}

// Write returns the generated literature review as raw text.
func (a LiteratureReviewer) Write(ctx context.Context, topic, description string, papers []types.Paper) (string, error) {
	return generate(ctx, a.C, "literature-review", literatureSystem, summaryPrompt(topic, description, papers, true))
}

// ReferenceAgent generates IEEE-style bibliography entries.
type ReferenceAgent struct {
	C Completer
}

// Generate returns the cleaned reference entries wrapped in the
// thebibliography envelope.
func (a ReferenceAgent) Generate(ctx context.Context, papers []types.Paper) (string, error) {
	out, err := generate(ctx, a.C, "references", referenceSystem, referencePrompt(papers))
	if err != nil {
		return "", err
	}
	return WrapBibliography(CleanFenced(out)), nil
}

// WrapBibliography encloses cleaned reference entries in the fixed
// bibliography envelope.
func WrapBibliography(body string) string {
	return fmt.Sprintf("\\begin{thebibliography}{99}\n\n%s\n\n\\end{thebibliography}", body)
}

// CitationAgent generates numbered IEEE citation strings. The output format
// of the generation service is not guaranteed, so parsing degrades
// gracefully (see ParseCitations).
type CitationAgent struct {
	C Completer
}

// Generate returns the ordered citation list. Citations[i] corresponds to
// inline marker [i+1].
func (a CitationAgent) Generate(ctx context.Context, papers []types.Paper) ([]string, error) {
	out, err := generate(ctx, a.C, "citations", citationSystem, referencePrompt(papers))
	if err != nil {
		return nil, err
	}
	return ParseCitations(out), nil
}

// MethodologyAgent generates the methodology section from the abstract, the
// literature review, and an optional human-supplied constraint string. It
// takes no paper list.
type MethodologyAgent struct {
	C Completer
}

// Write returns the generated methodology. The role instruction forbids a
// leading heading.
func (a MethodologyAgent) Write(ctx context.Context, topic, abstract, literatureReview, humanInput string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic of Research : %s\n", topic)
	fmt.Fprintf(&b, "Abstract : %s\n", abstract)
	fmt.Fprintf(&b, "Literature Review : %s\n", literatureReview)
	fmt.Fprintf(&b, "Human Input : %s", humanInput)
	return generate(ctx, a.C, "methodology", methodologySystem, b.String())
}

// FlowchartAgent generates Graphviz DOT source from the methodology text.
type FlowchartAgent struct {
	C Completer
}

// Generate returns normalized DOT source: fences stripped, literal "\n"
// unescaped, and every non-blank line statement-terminated.
func (a FlowchartAgent) Generate(ctx context.Context, methodology string) (string, error) {
	out, err := generate(ctx, a.C, "flowchart", flowchartSystem, "Methodology : "+methodology)
	if err != nil {
		return "", err
	}
	return TerminateStatements(CleanFenced(out)), nil
}

// TerminateStatements appends a ";" to every non-blank line that does not
// already end in a terminator or brace. Generation output terminates DOT
// statements inconsistently.
func TerminateStatements(src string) string {
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ";") || strings.HasSuffix(line, "{") || strings.HasSuffix(line, "}") {
			lines = append(lines, line)
		} else {
			lines = append(lines, line+";")
		}
	}
	return strings.Join(lines, "\n")
}
