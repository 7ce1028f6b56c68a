package worker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// SourceLimiter implements per-source rate limiting. One limiter is shared
// across all workers calling a given source, so total parallelism is capped
// by the strictest source, not by the pool size alone.
type SourceLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewSourceLimiter creates a new rate limiter with a default rate applied
// to sources that have no explicit configuration.
func NewSourceLimiter(requestsPerSecond float64, burst int) *SourceLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &SourceLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the named source's rate limit clears or ctx is done.
func (l *SourceLimiter) Wait(ctx context.Context, source string) error {
	return l.getLimiter(source).Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (l *SourceLimiter) Allow(source string) bool {
	return l.getLimiter(source).Allow()
}

// getLimiter returns the rate limiter for a source
func (l *SourceLimiter) getLimiter(source string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[source]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[source]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[source] = limiter

	return limiter
}

// SetSourceRate sets a custom rate limit for a specific source.
func (l *SourceLimiter) SetSourceRate(source string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[source] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
