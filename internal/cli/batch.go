package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/citecheck/internal/pipeline"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Check multiple documents and write per-document reports",
	Long: `Batch checks several documents in one run. The cache is shared
across documents, so a case cited in many briefs is resolved once.

Example:
  citecheck batch brief1.txt brief2.txt
  citecheck batch briefs/*.txt --output-dir ./reports --concurrency 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "verification workers shared across documents")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./citecheck-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the whole batch")

	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the resolution cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().StringVar(&clToken, "courtlistener-token", "", "CourtListener API token (or COURTLISTENER_API_TOKEN)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.Concurrency.Deadline = batchTimeout

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize pipeline: %w", err)
	}
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	fmt.Fprintf(os.Stderr, "Checking %d documents with %d workers\n\n", len(args), concurrency)

	successCount := 0
	failureCount := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			continue
		}

		report, err := p.Process(ctx, filepath.Base(path), string(data))
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			continue
		}

		slug := sanitizeFilename(filepath.Base(path))
		if err := renderer.RenderJSON(report, filepath.Join(outputDir, slug+".json")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write JSON: %v\n", path, err)
			continue
		}
		if err := renderer.RenderMarkdown(report, filepath.Join(outputDir, slug+".md")); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: write Markdown: %v\n", path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s: %d citations, %d verified\n",
			report.DocumentID, report.Stats.Citations, report.Stats.Verified)
	}

	fmt.Fprintf(os.Stderr, "\nBatch complete: %d ok, %d failed, reports in %s\n",
		successCount, failureCount, outputDir)
	if failureCount > 0 {
		return fmt.Errorf("%d documents failed", failureCount)
	}
	return nil
}

// sanitizeFilename makes a document name safe as a report filename.
func sanitizeFilename(s string) string {
	s = strings.TrimSuffix(s, filepath.Ext(s))
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", " ", "-",
	)
	s = replacer.Replace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}
