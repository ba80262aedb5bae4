// Package ratelimit implements the fixed-window limit on contact submissions.
// Window state lives in a Store so a single process can keep it in memory and
// several instances can share it through Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

// ErrNotFound is returned by Store.Get when no window exists for a key.
var ErrNotFound = errors.New("rate limit entry not found")

// Store persists rate limit windows. Set must keep the entry for at least ttl.
type Store interface {
	Get(ctx context.Context, key string) (models.RateLimitEntry, error)
	Set(ctx context.Context, key string, entry models.RateLimitEntry, ttl time.Duration) error
}

// AtomicStore is implemented by stores that can run the whole window check
// in one step. Limiter prefers it over Get and Set, which are only safe
// within a single process.
type AtomicStore interface {
	CheckWindow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (models.RateLimitDecision, error)
}

// Limiter allows Limit requests per key within a fixed Window.
type Limiter struct {
	mu     sync.Mutex
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Check records a request for key. A new window starts on the first request
// or once the previous window has passed. Requests beyond the limit are
// rejected with the reset time of the current window and are not counted.
func (l *Limiter) Check(ctx context.Context, key string) (models.RateLimitDecision, error) {
	if atomic, ok := l.store.(AtomicStore); ok {
		decision, err := atomic.CheckWindow(ctx, key, l.limit, l.window, l.now())
		if err != nil {
			return models.RateLimitDecision{}, fmt.Errorf("check rate limit window: %w", err)
		}
		return decision, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, err := l.store.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.RateLimitDecision{}, fmt.Errorf("load rate limit window: %w", err)
	}

	if errors.Is(err, ErrNotFound) || now.UnixMilli() > entry.ResetTime {
		entry = models.RateLimitEntry{Count: 1, ResetTime: now.Add(l.window).UnixMilli()}
		if err := l.store.Set(ctx, key, entry, l.window); err != nil {
			return models.RateLimitDecision{}, fmt.Errorf("start rate limit window: %w", err)
		}
		return models.RateLimitDecision{Allowed: true, ResetTime: time.UnixMilli(entry.ResetTime)}, nil
	}

	resetAt := time.UnixMilli(entry.ResetTime)
	if entry.Count >= l.limit {
		return models.RateLimitDecision{Allowed: false, ResetTime: resetAt}, nil
	}

	entry.Count++
	ttl := resetAt.Sub(now)
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	if err := l.store.Set(ctx, key, entry, ttl); err != nil {
		return models.RateLimitDecision{}, fmt.Errorf("update rate limit window: %w", err)
	}
	return models.RateLimitDecision{Allowed: true, ResetTime: resetAt}, nil
}
