// Package llm produces an optional narrative summary of a verification
// report. Summaries are generated after scoring and never change any
// verified flag or confidence value.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkravets/citecheck/internal/model"
)

// Provider abstracts a chat-completion backend.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest carries the prompt and generation limits.
type SummarizeRequest struct {
	Prompt    string
	MaxTokens int
}

// SummarizeResponse carries the generated markdown.
type SummarizeResponse struct {
	Text  string
	Model string
}

// BuildPrompt renders the report into a compact prompt. Only scored output
// goes in; the model sees conclusions, not raw source pages.
func BuildPrompt(report *model.Report) string {
	var b strings.Builder
	b.WriteString("You are reviewing the output of an automated legal citation checker.\n")
	b.WriteString("Write a short markdown summary for the document's author: which citations ")
	b.WriteString("verified cleanly, which need manual review and why. Do not invent citations ")
	b.WriteString("or change any verdict.\n\n")
	fmt.Fprintf(&b, "Document: %s\n", report.DocumentID)
	fmt.Fprintf(&b, "Citations: %d, clusters: %d, verified: %d, unverified: %d, unparseable: %d\n\n",
		report.Stats.Citations, report.Stats.Clusters, report.Stats.Verified,
		report.Stats.Unverified, report.Stats.Unparseable)

	for _, r := range report.Records {
		status := "UNVERIFIED"
		if r.Verified {
			status = "verified"
		}
		fmt.Fprintf(&b, "- %s [%s, confidence %.2f]: %s\n", r.CitationText, status, r.Confidence, r.Explanation)
	}
	return b.String()
}
