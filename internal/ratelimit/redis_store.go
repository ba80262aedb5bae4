package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/madeofpendletonwool/inquiryd/internal/models"
)

// RedisStore shares windows between instances. Each window is one JSON value
// that expires together with its window.
type RedisStore struct {
	redis     redis.Cmdable
	keyPrefix string
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{
		redis:     client,
		keyPrefix: "contact_rate_limit:",
	}
}

// checkWindow runs the whole fixed-window check inside Redis so concurrent
// instances cannot both admit the last request of a window. The entry keeps
// the same JSON shape that Get and Set use.
//
// KEYS[1] key, ARGV[1] now ms, ARGV[2] window ms, ARGV[3] limit.
// Returns {allowed, count, resetTime}.
var checkWindow = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local raw = redis.call('GET', KEYS[1])
if raw then
  local entry = cjson.decode(raw)
  local count = tonumber(entry.count)
  local reset = tonumber(entry.resetTime)
  if now <= reset then
    if count >= limit then
      return {0, count, reset}
    end
    count = count + 1
    local ttl = math.max(reset - now, 1)
    redis.call('SET', KEYS[1], string.format('{"count":%d,"resetTime":%d}', count, reset), 'PX', ttl)
    return {1, count, reset}
  end
end
local reset = now + window
redis.call('SET', KEYS[1], string.format('{"count":1,"resetTime":%d}', reset), 'PX', window)
return {1, 1, reset}
`)

// CheckWindow implements AtomicStore.
func (s *RedisStore) CheckWindow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (models.RateLimitDecision, error) {
	res, err := checkWindow.Run(ctx, s.redis, []string{s.keyPrefix + key},
		now.UnixMilli(), window.Milliseconds(), limit).Int64Slice()
	if err != nil {
		return models.RateLimitDecision{}, err
	}
	if len(res) != 3 {
		return models.RateLimitDecision{}, fmt.Errorf("unexpected rate limit script result: %v", res)
	}
	return models.RateLimitDecision{Allowed: res[0] == 1, ResetTime: time.UnixMilli(res[2])}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (models.RateLimitEntry, error) {
	raw, err := s.redis.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.RateLimitEntry{}, ErrNotFound
	}
	if err != nil {
		return models.RateLimitEntry{}, err
	}

	var entry models.RateLimitEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return models.RateLimitEntry{}, fmt.Errorf("decode rate limit entry: %w", err)
	}
	return entry, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry models.RateLimitEntry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, s.keyPrefix+key, string(raw), ttl).Err()
}
