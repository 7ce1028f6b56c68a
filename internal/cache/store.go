package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkravets/citecheck/internal/model"
)

// Entry is one cached resolution: either a canonical result or a NotFound
// sentinel. NotFound entries are cached too (negative caching) so known-bad
// citations do not hammer the sources, just with a shorter TTL.
type Entry struct {
	Result   *model.CanonicalResult `json:"result,omitempty"`
	NotFound bool                   `json:"not_found,omitempty"`
	StoredAt time.Time              `json:"stored_at"`
}

// URLStatus is one cached reachability probe.
type URLStatus struct {
	Reachable  bool      `json:"reachable"`
	StatusCode int       `json:"status_code,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Store layers the resolution and URL-reachability entries over a raw
// Cache backend. A nil Store is valid and behaves as a permanent miss, so
// the pipeline keeps working through a cache outage.
type Store struct {
	backend     Cache
	positiveTTL time.Duration
	negativeTTL time.Duration
	urlTTL      time.Duration
}

// NewStore wraps a backend with the configured TTL policy.
func NewStore(backend Cache, positiveTTL, negativeTTL, urlTTL time.Duration) *Store {
	return &Store{
		backend:     backend,
		positiveTTL: positiveTTL,
		negativeTTL: negativeTTL,
		urlTTL:      urlTTL,
	}
}

// Lookup fetches the resolution entry for a normalized citation.
func (s *Store) Lookup(normalized string) (*Entry, bool) {
	if s == nil || s.backend == nil {
		return nil, false
	}
	data, found := s.backend.Get(Key(normalized))
	if !found {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	return &e, true
}

// Save stores a resolution entry, choosing the negative TTL for NotFound
// sentinels. Writes are keyed and idempotent; last-writer-wins is fine
// because entries for the same key are expected to be identical.
func (s *Store) Save(normalized string, e *Entry) error {
	if s == nil || s.backend == nil {
		return nil
	}
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	ttl := s.positiveTTL
	if e.NotFound {
		ttl = s.negativeTTL
	}
	return s.backend.Set(Key(normalized), data, ttl)
}

// LookupURL fetches a cached reachability probe.
func (s *Store) LookupURL(url string) (*URLStatus, bool) {
	if s == nil || s.backend == nil {
		return nil, false
	}
	data, found := s.backend.Get(URLKey(url))
	if !found {
		return nil, false
	}
	var st URLStatus
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, false
	}
	return &st, true
}

// SaveURL stores a reachability probe result.
func (s *Store) SaveURL(url string, st *URLStatus) error {
	if s == nil || s.backend == nil {
		return nil
	}
	if st.CheckedAt.IsZero() {
		st.CheckedAt = time.Now().UTC()
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal url status: %w", err)
	}
	return s.backend.Set(URLKey(url), data, s.urlTTL)
}

// Clear force-invalidates every entry.
func (s *Store) Clear() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Clear()
}
