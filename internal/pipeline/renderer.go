package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mkravets/citecheck/internal/model"
)

// Renderer writes reports as JSON, Markdown, and a console summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Citation Check: %s\n\n", report.DocumentID)
	fmt.Fprintf(&b, "Checked: %s\n\n", report.CheckedAt.Format("2006-01-02 15:04 UTC"))
	if report.Degraded {
		b.WriteString("> **Note:** this run was degraded (cache unavailable or deadline reached); ")
		b.WriteString("some citations were scored on format alone.\n\n")
	}

	fmt.Fprintf(&b, "**%d** citations in **%d** clusters: %d verified, %d unverified, %d unparseable.\n\n",
		report.Stats.Citations, report.Stats.Clusters,
		report.Stats.Verified, report.Stats.Unverified, report.Stats.Unparseable)

	b.WriteString("| Citation | Status | Confidence | Canonical | Source |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, rec := range report.Records {
		status := "needs review"
		if rec.Verified {
			status = "verified"
		}
		canonical := rec.CanonicalName
		if rec.URL != "" {
			canonical = fmt.Sprintf("[%s](%s)", orDash(canonical), rec.URL)
		}
		fmt.Fprintf(&b, "| %s | %s | %.2f | %s | %s |\n",
			mdEscape(rec.CitationText), status, rec.Confidence, orDash(canonical), orDash(rec.Source))
	}
	b.WriteString("\n## Details\n\n")

	for _, rec := range report.Records {
		fmt.Fprintf(&b, "### %s\n\n", mdEscape(rec.CitationText))
		if len(rec.ParallelCitations) > 0 {
			fmt.Fprintf(&b, "Parallel citations: %s\n\n", strings.Join(rec.ParallelCitations, "; "))
		}
		fmt.Fprintf(&b, "%s\n\n", rec.Explanation)
	}

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		b.WriteString("## Summary (LLM-generated, advisory only)\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by citecheck. Verification reflects source availability ")
		b.WriteString("at check time and is not legal advice.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen digest to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s: %d citations, %d clusters\n", report.DocumentID,
		report.Stats.Citations, report.Stats.Clusters)
	fmt.Printf("  verified:    %d\n", report.Stats.Verified)
	fmt.Printf("  unverified:  %d\n", report.Stats.Unverified)
	if report.Stats.Unparseable > 0 {
		fmt.Printf("  unparseable: %d\n", report.Stats.Unparseable)
	}

	for _, rec := range report.Records {
		if rec.Verified {
			continue
		}
		fmt.Printf("  ! %s (%.2f): %s\n", rec.CitationText, rec.Confidence, rec.Explanation)
	}
	if report.Degraded {
		fmt.Println("  (degraded run: results may be incomplete)")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
