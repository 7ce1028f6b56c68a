package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/pipeline"
)

var (
	inlineText  string
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	httpProxy   string
	httpsProxy  string
	noCache     bool
	noFooter    bool
	workers     int
	clToken     string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check every legal citation in a document",
	Long: `Check extracts citations from a text file (or --text), groups
parallel citations, verifies each case against case-law sources in
fallback order, and reports a per-citation verdict with a transparent
confidence score.

Example:
  citecheck check brief.txt
  citecheck check brief.txt --json report.json --md report.md
  citecheck check --text "Roe v. Wade, 410 U.S. 113 (1973)"
  citecheck check brief.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&inlineText, "text", "", "check a literal text instead of a file")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")

	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall check deadline (expired clusters fall back to format-only scoring)")
	checkCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	checkCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	checkCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the resolution cache")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "verification workers (0 = config default)")
	checkCmd.Flags().StringVar(&clToken, "courtlistener-token", "", "CourtListener API token (or COURTLISTENER_API_TOKEN)")

	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM report summary")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	documentID, text, err := readInput(args)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", documentID)
		fmt.Fprintf(os.Stderr, "Deadline: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}

	report, err := p.Process(ctx, documentID, text)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Found %d citations in %d clusters\n", report.Stats.Citations, report.Stats.Clusters)
		fmt.Fprintf(os.Stderr, "✓ Verified %d, flagged %d\n", report.Stats.Verified, report.Stats.Unverified+report.Stats.Unparseable)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	return renderReport(cfg, report)
}

func readInput(args []string) (string, string, error) {
	if inlineText != "" {
		return "inline", inlineText, nil
	}
	if len(args) == 0 {
		return "", "", fmt.Errorf("provide a file argument or --text")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read document: %w", err)
	}
	return filepath.Base(args[0]), string(data), nil
}

// buildConfig layers flags over the config file over defaults.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	cfg.Concurrency.Deadline = timeout
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if clToken != "" {
		cfg.Adapters.CourtListener.APIKey = clToken
	} else if env := os.Getenv("COURTLISTENER_API_TOKEN"); env != "" && cfg.Adapters.CourtListener.APIKey == "" {
		cfg.Adapters.CourtListener.APIKey = env
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" && llmProvider == "openai" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

func renderReport(cfg *model.Config, report *model.Report) error {
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}
