// Package ratelimit implements a fixed-window request counter per
// submitter, backed by an in-process map or by redis.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of counting one request.
type Decision struct {
	Allowed bool
	Count   int
	ResetAt time.Time
}

// RetryAfter is how long a rejected caller should wait.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.Allowed || !d.ResetAt.After(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// Store counts hits per key within fixed windows. A key with no window, or
// whose window has expired, starts a new window with a count of one. A key
// at the limit is rejected without changing its state.
type Store interface {
	Hit(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps windows in a mutex guarded map. Expired windows are
// replaced lazily on access and removed by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]entry
	now     func() time.Time
}

// NewMemoryStore returns an empty store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]entry),
		now:     time.Now,
	}
}

// WithClock replaces the store clock.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Hit counts one request for key.
func (s *MemoryStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = entry{count: 1, resetAt: now.Add(window)}
		s.windows[key] = w
		return Decision{Allowed: true, Count: w.count, ResetAt: w.resetAt}, nil
	}

	if w.count >= limit {
		return Decision{Allowed: false, Count: w.count, ResetAt: w.resetAt}, nil
	}

	w.count++
	s.windows[key] = w
	return Decision{Allowed: true, Count: w.count, ResetAt: w.resetAt}, nil
}

// Sweep deletes windows that expired before now and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked windows.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
