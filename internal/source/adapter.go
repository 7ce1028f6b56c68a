// Package source implements the external lookup adapters behind one
// uniform resolve contract, plus the URL reachability prober.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkravets/citecheck/internal/model"
)

// ErrNotFound is returned when a source answered but had no matching case.
// It is a clean miss: the orchestrator falls through to the next adapter
// without retrying this one.
var ErrNotFound = errors.New("no matching case found")

// TransientError marks failures worth retrying with backoff: timeouts,
// rate limiting, and 5xx responses.
type TransientError struct {
	Source string
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: transient failure (status %d)", e.Source, e.Status)
	}
	return fmt.Sprintf("%s: transient failure: %v", e.Source, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks failures that retrying cannot fix: bad requests,
// auth problems, robots.txt denials. The orchestrator skips retry and
// falls through immediately.
type PermanentError struct {
	Source string
	Status int
	Err    error
}

func (e *PermanentError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: permanent failure (status %d)", e.Source, e.Status)
	}
	return fmt.Sprintf("%s: permanent failure: %v", e.Source, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// statusError classifies an unexpected HTTP status. 408, 429, and 5xx
// are transient; any other 4xx is permanent.
func statusError(source string, status int) error {
	if status == 408 || status == 429 || status >= 500 {
		return &TransientError{Source: source, Status: status}
	}
	return &PermanentError{Source: source, Status: status}
}

// Adapter is one external information source. Implementations must be safe
// for concurrent use; the shared rate limiter is enforced by the caller.
type Adapter interface {
	// Name is the stable source tag carried into CanonicalResult.Source.
	Name() string

	// Priority fixes the fallback order; lower resolves first.
	Priority() int

	// Resolve looks the cluster up. It returns a result, ErrNotFound,
	// *TransientError, or *PermanentError.
	Resolve(ctx context.Context, cluster *model.CitationCluster) (*model.CanonicalResult, error)
}
