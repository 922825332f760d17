package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "portal:session:"

type redisBackend struct {
	client *redis.Client
}

func (b *redisBackend) key(id string) string {
	return redisKeyPrefix + id
}

func (b *redisBackend) get(ctx context.Context, id string) (map[string]string, bool, error) {
	data, err := b.client.Get(ctx, b.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session: redis get: %w", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, false, fmt.Errorf("session: decode redis session: %w", err)
	}
	return values, true, nil
}

func (b *redisBackend) put(ctx context.Context, id string, values map[string]string, ttl time.Duration) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("session: encode redis session: %w", err)
	}
	if err := b.client.Set(ctx, b.key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (b *redisBackend) remove(ctx context.Context, id string) error {
	if err := b.client.Del(ctx, b.key(id)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

// RedisStore keeps sessions in Redis with the cookie TTL as key expiry.
type RedisStore struct {
	serverStore
}

func NewRedisStore(client *redis.Client, cookie CookieOptions) *RedisStore {
	return &RedisStore{serverStore{backend: &redisBackend{client: client}, cookie: cookie}}
}
