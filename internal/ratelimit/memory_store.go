package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

// MemoryStore keeps windows in a process-local map. The limit it enforces is
// per process; use RedisStore when several instances serve traffic.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]models.RateLimitEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]models.RateLimitEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (models.RateLimitEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return models.RateLimitEntry{}, ErrNotFound
	}
	return entry, nil
}

// Set stores entry. ttl is not enforced here: expired windows are detected by
// the Limiter through ResetTime and reclaimed by Sweep.
func (s *MemoryStore) Set(_ context.Context, key string, entry models.RateLimitEntry, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
	return nil
}

// Sweep drops every window that ended before now and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if now.UnixMilli() > entry.ResetTime {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := s.Sweep(now)
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
