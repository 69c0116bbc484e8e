package store

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

var (
	// ErrNotFound is returned before the first observation is saved.
	ErrNotFound = errors.New("no observation available")
	// ErrStale is returned when the latest observation is older than the retention window.
	ErrStale = errors.New("observation is stale")
)

// MemoryStore is a concurrency-safe holder for the latest observation.
// It keeps no history.
type MemoryStore struct {
	mu sync.RWMutex

	latest *spaceweather.Observation

	// retention configuration
	maxAge time.Duration // optional max age for the observation
	clock  clockwork.Clock
}

// NewMemoryStore creates a MemoryStore. If maxAge is <= 0 observations never go stale.
func NewMemoryStore(maxAge time.Duration, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		maxAge: maxAge,
		clock:  clock,
	}
}

// SaveObservation replaces the held observation unless obs is older than it.
func (s *MemoryStore) SaveObservation(obs spaceweather.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest != nil && obs.ObservedAt.Before(s.latest.ObservedAt) {
		return
	}
	s.latest = &obs
}

// GetLatest returns the held observation. A stale observation is returned
// together with ErrStale so callers can still fall back to it.
func (s *MemoryStore) GetLatest() (spaceweather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return spaceweather.Observation{}, ErrNotFound
	}
	obs := *s.latest
	if s.maxAge > 0 && s.clock.Since(obs.ObservedAt) > s.maxAge {
		return obs, ErrStale
	}
	return obs, nil
}
