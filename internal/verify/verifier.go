// Package verify drives the per-cluster resolution state machine:
// cache check, ordered adapter fallback under rate limits, scoring, and
// cache write-back.
package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/mkravets/citecheck/internal/cache"
	"github.com/mkravets/citecheck/internal/cluster"
	"github.com/mkravets/citecheck/internal/model"
	"github.com/mkravets/citecheck/internal/score"
	"github.com/mkravets/citecheck/internal/source"
	"github.com/mkravets/citecheck/internal/worker"
)

// sleepFunc and backoffBase are injectable for tests.
var (
	sleepFunc   = time.Sleep
	backoffBase = time.Second
)

// Verifier resolves citation clusters into VerificationRecords. Adapters
// are always tried in fixed priority order within a cluster; a cluster is
// never resolved by two adapters racing each other.
type Verifier struct {
	adapters []source.Adapter
	store    *cache.Store
	limiter  *worker.SourceLimiter
	scorer   *score.Scorer
	cfg      *model.Config

	retries map[string]int

	// permanent adapter failures are logged once per run
	permLogged sync.Map
}

// New builds a verifier over the given adapters, sorted by priority.
// A nil store disables caching without disabling verification.
func New(cfg *model.Config, store *cache.Store, adapters []source.Adapter) *Verifier {
	sorted := make([]source.Adapter, len(adapters))
	copy(sorted, adapters)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority() < sorted[j].Priority() })

	limiter := worker.NewSourceLimiter(50, 10) // generous default for stubs
	retries := make(map[string]int)
	for name, ac := range map[string]model.AdapterConfig{
		"courtlistener": cfg.Adapters.CourtListener,
		"scholar":       cfg.Adapters.Scholar,
		"websearch":     cfg.Adapters.WebSearch,
		"privacysearch": cfg.Adapters.PrivacySearch,
	} {
		if ac.RateLimit > 0 {
			limiter.SetSourceRate(name, ac.RateLimit, ac.Burst)
		}
		if ac.MaxRetries > 0 {
			retries[name] = ac.MaxRetries
		}
	}

	return &Verifier{
		adapters: sorted,
		store:    store,
		limiter:  limiter,
		scorer:   score.NewScorer(cfg.Scoring),
		cfg:      cfg,
		retries:  retries,
	}
}

// VerifyCluster runs one cluster through the state machine. It always
// returns a record; failures degrade to format-only scoring.
func (v *Verifier) VerifyCluster(ctx context.Context, cl *model.CitationCluster) *model.VerificationRecord {
	key := cluster.Key(cl)
	likelihood, likNote := v.scorer.Likelihood(cl.Primary)

	// CACHE_CHECK
	if entry, found := v.store.Lookup(key); found {
		var res *model.CanonicalResult
		if !entry.NotFound {
			res = entry.Result
		}
		return v.finalize(cl, res, likelihood, likNote, false)
	}

	// RESOLVING
	res, deadlineHit := v.resolve(ctx, cl)

	// Cache write-back; a deadline miss is not a NotFound and must not be
	// negatively cached.
	if !deadlineHit {
		if err := v.store.Save(key, &cache.Entry{Result: res, NotFound: res == nil}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache write failed: %v\n", err)
		}
	}

	// SCORING -> DONE
	return v.finalize(cl, res, likelihood, likNote, deadlineHit)
}

// resolve walks the adapter chain in priority order. It returns the first
// confirmed result (possibly enriched with a fallback link or a
// corroborating agreement) and whether the batch deadline cut resolution
// short.
func (v *Verifier) resolve(ctx context.Context, cl *model.CitationCluster) (*model.CanonicalResult, bool) {
	for i, a := range v.adapters {
		if ctx.Err() != nil {
			return nil, true
		}
		if err := v.limiter.Wait(ctx, a.Name()); err != nil {
			return nil, true
		}

		res, err := v.resolveWithRetry(ctx, a, cl)
		switch {
		case res != nil:
			if res.Authoritative && res.URL == "" {
				v.borrowLink(ctx, cl, res, v.adapters[i+1:])
			}
			if !res.Authoritative {
				v.corroborate(ctx, cl, res, v.adapters[i+1:])
			}
			return res, false

		case errors.Is(err, source.ErrNotFound):
			continue

		case isPermanent(err):
			v.logPermanentOnce(a.Name(), err)
			continue

		default:
			// transient after retries, or abandoned by the deadline
			if ctx.Err() != nil {
				return nil, true
			}
			continue
		}
	}
	return nil, false
}

// resolveWithRetry retries transient failures with exponential backoff
// inside a single adapter. NotFound and permanent errors return at once.
func (v *Verifier) resolveWithRetry(ctx context.Context, a source.Adapter, cl *model.CitationCluster) (*model.CanonicalResult, error) {
	attempts := v.retries[a.Name()]
	if attempts <= 0 {
		attempts = 3
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		res, err := a.Resolve(ctx, cl)
		if err == nil {
			return res, nil
		}
		lastErr = err

		var te *source.TransientError
		if !errors.As(err, &te) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		if attempt < attempts-1 {
			sleepFunc(backoffBase * time.Duration(1<<uint(attempt)))
		}
	}
	return nil, lastErr
}

// borrowLink fills an authoritative result's missing locator from the
// first fallback source that has one, so the user always gets a clickable
// reference.
func (v *Verifier) borrowLink(ctx context.Context, cl *model.CitationCluster, res *model.CanonicalResult, rest []source.Adapter) {
	for _, a := range rest {
		if ctx.Err() != nil {
			return
		}
		if err := v.limiter.Wait(ctx, a.Name()); err != nil {
			return
		}
		other, err := a.Resolve(ctx, cl)
		if err != nil || other == nil {
			continue
		}
		if other.URL != "" {
			res.URL = other.URL
			if score.Similarity(res.CaseName, other.CaseName) >= v.cfg.Scoring.NameSimilarityThreshold {
				res.Agreements++
			}
			return
		}
	}
}

// corroborate consults one further source when a fallback hit cannot stand
// on its own (generic title or weak name match). Two agreeing independent
// sources are enough for high confidence.
func (v *Verifier) corroborate(ctx context.Context, cl *model.CitationCluster, res *model.CanonicalResult, rest []source.Adapter) {
	sim := score.Similarity(cl.CaseName(), res.CaseName)
	if !score.GenericName(res.CaseName) && sim >= v.cfg.Scoring.NameSimilarityThreshold {
		return
	}
	for _, a := range rest {
		if ctx.Err() != nil {
			return
		}
		if err := v.limiter.Wait(ctx, a.Name()); err != nil {
			return
		}
		other, err := a.Resolve(ctx, cl)
		if err != nil || other == nil {
			return // one extra attempt only
		}
		if score.Similarity(res.CaseName, other.CaseName) >= v.cfg.Scoring.NameSimilarityThreshold {
			res.Agreements++
			if res.URL == "" {
				res.URL = other.URL
			}
		}
		return
	}
}

func (v *Verifier) finalize(cl *model.CitationCluster, res *model.CanonicalResult, likelihood float64, likNote string, deadlineHit bool) *model.VerificationRecord {
	confidence, verified, confNote := v.scorer.Confidence(cl, res, likelihood)

	explanation := confNote
	if likNote != "" {
		explanation += "; " + likNote
	}
	if deadlineHit {
		explanation = "processing deadline reached; " + explanation
		verified = false
	}

	rec := &model.VerificationRecord{
		CitationText:      cl.Primary.Raw.Text,
		ParallelCitations: cl.ParallelTexts(),
		ExtractedCaseName: cl.CaseName(),
		ExtractedYear:     cl.Year(),
		Verified:          verified,
		Confidence:        confidence,
		Likelihood:        likelihood,
		Explanation:       explanation,
		Cluster:           cl,
	}
	if res != nil {
		rec.CanonicalName = res.CaseName
		rec.CanonicalDate = res.Date
		rec.Court = res.Court
		rec.Source = res.Source
		rec.URL = res.URL
	}
	return rec
}

func isPermanent(err error) bool {
	var pe *source.PermanentError
	return errors.As(err, &pe)
}

func (v *Verifier) logPermanentOnce(name string, err error) {
	if _, loaded := v.permLogged.LoadOrStore(name, true); !loaded {
		fmt.Fprintf(os.Stderr, "warning: source %s failed permanently this run: %v\n", name, err)
	}
}
