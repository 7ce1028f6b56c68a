package pipeline

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mkravets/citecheck/internal/cache"
	"github.com/mkravets/citecheck/internal/cluster"
	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/source"
)

// stubAdapter resolves from a fixed table of normalized citations.
type stubAdapter struct {
	name     string
	priority int
	table    map[string]*model.CanonicalResult
	calls    int32
}

func (a *stubAdapter) Name() string  { return a.name }
func (a *stubAdapter) Priority() int { return a.priority }
func (a *stubAdapter) Resolve(ctx context.Context, cl *model.CitationCluster) (*model.CanonicalResult, error) {
	atomic.AddInt32(&a.calls, 1)
	if res, ok := a.table[cluster.Key(cl)]; ok {
		copy := *res
		return &copy, nil
	}
	return nil, source.ErrNotFound
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Concurrency.Workers = 2
	cfg.Concurrency.Deadline = time.Minute
	return cfg
}

func memStore() *cache.Store {
	return cache.NewStore(cache.NewMemoryCache(time.Hour, time.Hour), time.Hour, time.Minute, time.Hour)
}

func TestProcess_VerifiedAuthoritative(t *testing.T) {
	authoritative := &stubAdapter{name: "courtdb", priority: 1, table: map[string]*model.CanonicalResult{
		"410 U.S. 113": {CaseName: "Roe v. Wade", Date: "1973-01-22", Source: "courtdb", Authoritative: true},
	}}

	p := NewWithAdapters(testConfig(), nil, []source.Adapter{authoritative})
	report, err := p.Process(context.Background(), "brief.txt", "See Roe v. Wade, 410 U.S. 113 (1973).")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if report.Stats.Citations != 1 || report.Stats.Clusters != 1 {
		t.Fatalf("stats: %+v", report.Stats)
	}
	if report.Stats.Verified != 1 || report.Stats.Unverified != 0 {
		t.Errorf("expected 1 verified record, got %+v", report.Stats)
	}

	rec := report.Records[0]
	if rec.CanonicalName != "Roe v. Wade" || rec.Confidence != 0.95 || !rec.Verified {
		t.Errorf("record: %+v", rec)
	}
	if rec.ExtractedCaseName != "Roe v. Wade" || rec.ExtractedYear != "1973" {
		t.Errorf("extraction lost: name=%q year=%q", rec.ExtractedCaseName, rec.ExtractedYear)
	}
}

func TestProcess_ParallelCitationsResolveOnce(t *testing.T) {
	authoritative := &stubAdapter{name: "courtdb", priority: 1, table: map[string]*model.CanonicalResult{
		"199 Wn. App. 280": {CaseName: "State v. Smith", Source: "courtdb", Authoritative: true},
	}}

	p := NewWithAdapters(testConfig(), nil, []source.Adapter{authoritative})
	report, err := p.Process(context.Background(), "brief.txt",
		"State v. Smith, 199 Wn. App. 280, 283, 399 P.3d 1195 (2017), controls.")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if report.Stats.Citations != 2 {
		t.Errorf("expected 2 citations, got %d", report.Stats.Citations)
	}
	if report.Stats.Clusters != 1 {
		t.Errorf("parallel pair should form 1 cluster, got %d", report.Stats.Clusters)
	}
	if got := atomic.LoadInt32(&authoritative.calls); got != 1 {
		t.Errorf("cluster resolved %d times, want 1", got)
	}

	rec := report.Records[0]
	if rec.CitationText != "199 Wn. App. 280" {
		t.Errorf("representative citation wrong: %q", rec.CitationText)
	}
	if len(rec.ParallelCitations) != 1 || rec.ParallelCitations[0] != "399 P.3d 1195" {
		t.Errorf("expected the non-primary parallel text on the record, got %v", rec.ParallelCitations)
	}
	if !rec.Verified {
		t.Error("cluster should verify via its representative")
	}
}

func TestProcess_ImplausibleCitationScoresLow(t *testing.T) {
	nothing := &stubAdapter{name: "courtdb", priority: 1, table: nil}

	p := NewWithAdapters(testConfig(), nil, []source.Adapter{nothing})
	report, err := p.Process(context.Background(), "brief.txt", "Compare 999 F.999d 999 (2025).")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if report.Stats.Citations != 1 {
		t.Fatalf("expected 1 citation, got %d", report.Stats.Citations)
	}
	rec := report.Records[0]
	if rec.Verified {
		t.Error("implausible unconfirmed citation verified")
	}
	if rec.Confidence >= 0.3 {
		t.Errorf("confidence %.2f, want < 0.3", rec.Confidence)
	}
	if !strings.Contains(rec.Explanation, "volume 999") {
		t.Errorf("explanation must mention the uncheckable volume, got %q", rec.Explanation)
	}
}

func TestProcess_RecordsInDocumentOrder(t *testing.T) {
	authoritative := &stubAdapter{name: "courtdb", priority: 1, table: map[string]*model.CanonicalResult{
		"410 U.S. 113": {CaseName: "Roe v. Wade", Source: "courtdb", Authoritative: true},
		"384 U.S. 436": {CaseName: "Miranda v. Arizona", Source: "courtdb", Authoritative: true},
	}}

	text := "Miranda v. Arizona, 384 U.S. 436 (1966), came first in this brief, " +
		"although the discussion below leans more heavily on the later holding of " +
		"Roe v. Wade, 410 U.S. 113 (1973)."
	p := NewWithAdapters(testConfig(), nil, []source.Adapter{authoritative})
	report, err := p.Process(context.Background(), "brief.txt", text)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(report.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(report.Records))
	}
	if report.Records[0].CanonicalName != "Miranda v. Arizona" {
		t.Errorf("first record should be the first citation, got %q", report.Records[0].CanonicalName)
	}
	if report.Records[1].CanonicalName != "Roe v. Wade" {
		t.Errorf("second record wrong: %q", report.Records[1].CanonicalName)
	}
}

func TestProcess_NoCitations(t *testing.T) {
	p := NewWithAdapters(testConfig(), nil, []source.Adapter{
		&stubAdapter{name: "courtdb", priority: 1},
	})
	report, err := p.Process(context.Background(), "empty.txt", "Nothing legal about this text.")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(report.Records) != 0 || report.Stats.Citations != 0 {
		t.Errorf("expected empty report, got %+v", report.Stats)
	}
}

func TestProcess_SharedCacheAcrossDocuments(t *testing.T) {
	authoritative := &stubAdapter{name: "courtdb", priority: 1, table: map[string]*model.CanonicalResult{
		"410 U.S. 113": {CaseName: "Roe v. Wade", Source: "courtdb", Authoritative: true},
	}}

	p := NewWithAdapters(testConfig(), memStore(), []source.Adapter{authoritative})

	for _, doc := range []string{"a.txt", "b.txt"} {
		if _, err := p.Process(context.Background(), doc, "Roe v. Wade, 410 U.S. 113 (1973)."); err != nil {
			t.Fatalf("process %s: %v", doc, err)
		}
	}

	if got := atomic.LoadInt32(&authoritative.calls); got != 1 {
		t.Errorf("same citation resolved %d times across documents, want 1", got)
	}
}
