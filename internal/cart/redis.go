package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cart keys: cart:{cart_id} -> JSON item array.
const keyPrefix = "cart:"

// DefaultTTL is how long an untouched cart survives in Redis.
const DefaultTTL = 7 * 24 * time.Hour

var _ Store = (*RedisStore)(nil)

// RedisStore keeps carts in Redis with a sliding TTL, so carts survive
// restarts and are shared across instances.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore. A non-positive ttl falls back to
// DefaultTTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Get returns the cart for the given id and refreshes its TTL.
func (s *RedisStore) Get(ctx context.Context, cartID string) ([]Item, error) {
	data, err := s.rdb.GetEx(ctx, keyPrefix+cartID, s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get cart")
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	return items, nil
}

// Set replaces the cart for the given id.
func (s *RedisStore) Set(ctx context.Context, cartID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.rdb.Set(ctx, keyPrefix+cartID, data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "set cart")
	}
	return nil
}

// Clear removes the cart for the given id.
func (s *RedisStore) Clear(ctx context.Context, cartID string) error {
	if err := s.rdb.Del(ctx, keyPrefix+cartID).Err(); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}
