package source

import (
	"context"
	"net/http"

	"github.com/mkravets/citecheck/internal/cache"
	"github.com/mkravets/citecheck/internal/model"
)

// Prober checks whether a locator URL is reachable so reports never hand
// the user a dead link without saying so. Results are cached in the URL
// keyspace with their own TTL.
type Prober struct {
	client    *http.Client
	store     *cache.Store
	userAgent string
}

// NewProber builds a prober sharing the adapter HTTP configuration.
func NewProber(httpCfg model.HTTPConfig, store *cache.Store) *Prober {
	return &Prober{
		client:    newHTTPClient(httpCfg),
		store:     store,
		userAgent: httpCfg.UserAgent,
	}
}

// Check probes a URL with a HEAD request, consulting the cache first.
// Transient responses get one more attempt. Probe failures are reported
// as unreachable, never as errors: a dead locator must not fail the
// record it belongs to.
func (p *Prober) Check(ctx context.Context, url string) *cache.URLStatus {
	if st, found := p.store.LookupURL(url); found {
		return st
	}

	st := p.probe(ctx, url)
	if !st.Reachable && (st.StatusCode == 0 || st.StatusCode == http.StatusTooManyRequests || st.StatusCode >= 500) && ctx.Err() == nil {
		st = p.probe(ctx, url)
	}

	_ = p.store.SaveURL(url, st)
	return st
}

func (p *Prober) probe(ctx context.Context, url string) *cache.URLStatus {
	st := &cache.URLStatus{}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return st
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return st
	}
	defer func() { _ = resp.Body.Close() }()

	st.StatusCode = resp.StatusCode
	st.Reachable = resp.StatusCode >= 200 && resp.StatusCode < 400
	return st
}
