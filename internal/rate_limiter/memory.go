package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int64
	resetAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*window
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{now: now, windows: make(map[string]*window)}
}

func (s *memoryStore) Incr(_ context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		s.evictExpired(now)
		w = &window{resetAt: now.Add(d)}
		s.windows[key] = w
	}
	w.count++

	return w.count, w.resetAt.Sub(now), nil
}

// evictExpired drops finished windows so idle clients do not pile up.
func (s *memoryStore) evictExpired(now time.Time) {
	for k, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, k)
		}
	}
}
