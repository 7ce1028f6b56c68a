package llm

import (
	"context"
	"time"

	"github.com/mkravets/citecheck/internal/model"
)

// Summarizer attaches an LLMSummary to finished reports. It only reads
// the report; provider failures become warnings on the summary, never
// errors for the run.
type Summarizer struct {
	provider  Provider
	timeout   time.Duration
	maxTokens int
}

// NewSummarizer builds a summarizer, or returns nil when no provider is
// configured.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 800
	}
	return &Summarizer{provider: provider, timeout: timeout, maxTokens: maxTokens}, nil
}

// Summarize generates the narrative for a report. The report's records
// and stats are already final when this runs.
func (s *Summarizer) Summarize(ctx context.Context, report *model.Report) *model.LLMSummary {
	summary := &model.LLMSummary{
		Enabled:  true,
		Provider: s.provider.Name(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if !s.provider.IsAvailable(ctx) {
		summary.Warnings = append(summary.Warnings, "provider unavailable; summary skipped")
		return summary
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Prompt:    BuildPrompt(report),
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		summary.Warnings = append(summary.Warnings, err.Error())
		return summary
	}
	summary.Model = resp.Model
	summary.SummaryMD = resp.Text
	return summary
}
