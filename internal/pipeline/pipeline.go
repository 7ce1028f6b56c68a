// Package pipeline wires parsing, clustering, verification, and rendering
// into the end-to-end document check.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mkravets/citecheck/internal/cache"
	"github.com/mkravets/citecheck/internal/cite"
	"github.com/mkravets/citecheck/internal/cluster"
	"github.com/mkravets/citecheck/internal/llm"
	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/source"
	"github.com/mkravets/citecheck/internal/util"
	"github.com/mkravets/citecheck/internal/verify"
)

// Pipeline is the top-level document checker. Construct once, run many
// documents; the cache and robots state persist across runs.
type Pipeline struct {
	cfg       *model.Config
	parser    *cite.Parser
	clusterer *cluster.Clusterer
	verifier  *verify.Verifier
	store     *cache.Store
	prober    *source.Prober

	summarizer *llm.Summarizer

	// degraded is set when the configured cache backend was unavailable
	// at startup and the pipeline fell back to running uncached.
	degraded bool
}

// New builds the production pipeline from configuration.
func New(cfg *model.Config) (*Pipeline, error) {
	store, degraded := buildStore(cfg)

	summarizer, err := llm.NewSummarizer(cfg.LLM)
	if err != nil {
		return nil, err
	}

	p := NewWithAdapters(cfg, store, buildAdapters(cfg))
	p.summarizer = summarizer
	p.degraded = degraded
	return p, nil
}

// NewWithAdapters builds a pipeline over explicit adapters and store.
// Callers that stub out the network pass their own adapter set here.
func NewWithAdapters(cfg *model.Config, store *cache.Store, adapters []source.Adapter) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		parser:    cite.NewParser(),
		clusterer: cluster.New(cfg.Cluster.MaxGapChars),
		verifier:  verify.New(cfg, store, adapters),
		store:     store,
		prober:    source.NewProber(cfg.HTTP, store),
	}
}

// Process checks one document and returns its report, records in
// document order.
func (p *Pipeline) Process(ctx context.Context, documentID, text string) (*model.Report, error) {
	parsed, parseErrs := p.parser.ParseDocument(text)
	clusters := p.clusterer.Cluster(parsed)

	records, deadlineHit := p.verifier.VerifyBatch(ctx, clusters)

	p.probeLinks(ctx, records)

	records = append(records, unparseableRecords(parseErrs)...)
	sort.SliceStable(records, func(i, j int) bool { return recordOffset(records[i]) < recordOffset(records[j]) })

	report := &model.Report{
		DocumentID: documentID,
		CheckedAt:  time.Now().UTC(),
		Records:    records,
		Degraded:   p.degraded || deadlineHit,
	}
	report.Stats = stats(len(parsed), len(clusters), records)

	if p.summarizer != nil {
		report.LLM = p.summarizer.Summarize(ctx, report)
	}
	return report, nil
}

// probeLinks checks record locators and annotates dead ones. A dead link
// never changes a verdict, only the explanation.
func (p *Pipeline) probeLinks(ctx context.Context, records []*model.VerificationRecord) {
	for _, r := range records {
		if r.URL == "" || ctx.Err() != nil {
			continue
		}
		if st := p.prober.Check(ctx, r.URL); !st.Reachable {
			r.Explanation += "; locator link unreachable"
		}
	}
}

// unparseableRecords converts parse failures into unverified records so a
// report accounts for every citation-shaped string in the document.
func unparseableRecords(errs []*model.ParseError) []*model.VerificationRecord {
	var out []*model.VerificationRecord
	for _, pe := range errs {
		out = append(out, &model.VerificationRecord{
			CitationText: pe.Text,
			Verified:     false,
			Explanation:  fmt.Sprintf("citation could not be parsed: %s", pe.Reason),
		})
	}
	return out
}

func recordOffset(r *model.VerificationRecord) int {
	if r.Cluster != nil {
		return r.Cluster.Primary.Raw.Start
	}
	return 1 << 30 // unparseable entries sort after located records
}

func stats(citations, clusters int, records []*model.VerificationRecord) model.ReportStats {
	s := model.ReportStats{Citations: citations, Clusters: clusters}
	for _, r := range records {
		switch {
		case r.Cluster == nil:
			s.Unparseable++
		case r.Verified:
			s.Verified++
		default:
			s.Unverified++
		}
	}
	return s
}

// buildStore constructs the cache store per configuration. A backend that
// cannot be initialized degrades to no caching rather than failing the run.
func buildStore(cfg *model.Config) (*cache.Store, bool) {
	if !cfg.Cache.Enabled {
		return nil, false
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".citecheck", "cache")
		}
	}

	var backend cache.Cache
	switch cfg.Cache.Backend {
	case "memory":
		backend = cache.NewMemoryCache(cfg.Cache.PositiveTTL, 10*time.Minute)
	case "disk":
		backend = cache.NewDiskCache(dir, cfg.Cache.PositiveTTL)
	case "redis":
		rc, err := cache.NewRedisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: redis cache unavailable, continuing uncached: %v\n", err)
			return nil, true
		}
		backend = rc
	default: // layered
		backend = cache.NewLayeredCache(time.Hour, cache.NewDiskCache(dir, cfg.Cache.PositiveTTL))
	}

	return cache.NewStore(backend, cfg.Cache.PositiveTTL, cfg.Cache.NegativeTTL, cfg.Cache.URLTTL), false
}

// buildAdapters constructs the enabled source adapters in fallback order.
func buildAdapters(cfg *model.Config) []source.Adapter {
	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)

	var adapters []source.Adapter
	if cfg.Adapters.CourtListener.Enabled {
		adapters = append(adapters, source.NewCourtListener(cfg.Adapters.CourtListener, cfg.HTTP))
	}
	if cfg.Adapters.Scholar.Enabled {
		adapters = append(adapters, source.NewScholar(cfg.Adapters.Scholar, cfg.HTTP, robots))
	}
	if cfg.Adapters.WebSearch.Enabled {
		adapters = append(adapters, source.NewWebSearch(cfg.Adapters.WebSearch, cfg.HTTP, robots))
	}
	if cfg.Adapters.PrivacySearch.Enabled {
		adapters = append(adapters, source.NewPrivacySearch(cfg.Adapters.PrivacySearch, cfg.HTTP, robots))
	}
	return adapters
}

// ClearCache force-invalidates every cached resolution and URL probe.
func (p *Pipeline) ClearCache() error {
	return p.store.Clear()
}
