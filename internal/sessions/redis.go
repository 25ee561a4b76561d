package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"phonewidget_backend/platform/apperr"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "widget:session:"

// RedisStore persists instances as JSON values with a TTL, so abandoned
// widgets expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store backed by the given Redis client. A zero ttl
// means instances never expire.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisStoreFromURL parses a Redis URL and creates a store around it.
func NewRedisStoreFromURL(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "invalid redis url", err)
	}
	return NewRedisStore(redis.NewClient(opt), ttl), nil
}

// Get returns the instance with the given id.
func (s *RedisStore) Get(ctx context.Context, id string) (Instance, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Instance{}, apperr.NotFound("widget instance not found")
	}
	if err != nil {
		return Instance{}, apperr.Wrap(apperr.KindInternal, "session read failed", err)
	}

	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return Instance{}, apperr.Wrap(apperr.KindInternal, "corrupt session payload", err)
	}
	return inst, nil
}

// Put stores the instance, refreshing its TTL.
func (s *RedisStore) Put(ctx context.Context, inst Instance) error {
	data, err := json.Marshal(inst)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "session encode failed", err)
	}

	if err := s.client.Set(ctx, keyPrefix+inst.ID, data, s.ttl).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "session write failed", err)
	}
	return nil
}

// Delete removes the instance. Deleting an unknown id is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "session delete failed", err)
	}
	return nil
}

// Ping verifies connectivity, used by the health endpoint.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ Store = (*RedisStore)(nil)
