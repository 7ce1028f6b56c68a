package worker

import (
	"context"
	"testing"
)

func TestSourceLimiter_New(t *testing.T) {
	limiter := NewSourceLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewSourceLimiter(10, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.defaultBurst)
	}
}

func TestSourceLimiter_Wait(t *testing.T) {
	limiter := NewSourceLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "courtlistener"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different source has its own bucket
	if err := limiter.Wait(ctx, "scholar"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestSourceLimiter_RateLimit(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewSourceLimiter(1, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "courtlistener"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Token consumed; Allow must fail without waiting
	if limiter.Allow("courtlistener") {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Other sources unaffected
	if !limiter.Allow("scholar") {
		t.Errorf("expected allow for other source")
	}
}

func TestSourceLimiter_SetSourceRate(t *testing.T) {
	limiter := NewSourceLimiter(10, 10) // fast default

	limiter.SetSourceRate("scholar", 0.1, 1) // very slow

	if !limiter.Allow("scholar") {
		t.Errorf("first request should pass")
	}
	if limiter.Allow("scholar") {
		t.Errorf("second request should fail")
	}
	if !limiter.Allow("websearch") {
		t.Errorf("other source should pass")
	}
}

func TestSourceLimiter_WaitCancelled(t *testing.T) {
	limiter := NewSourceLimiter(0.01, 1)
	ctx, cancel := context.WithCancel(context.Background())

	// Drain the single token
	if err := limiter.Wait(ctx, "slow"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	cancel()
	if err := limiter.Wait(ctx, "slow"); err == nil {
		t.Errorf("expected error waiting on cancelled context")
	}
}
