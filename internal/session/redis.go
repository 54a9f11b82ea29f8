package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys so the gateway can share a redis
// instance with other services.
const keyPrefix = "rbacgate:sess:"

// RedisStore is a Store backed by a redis instance. Records are stored as
// JSON strings under a namespaced key and expire with the session TTL, so
// abandoned sessions clean themselves up.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore returns a RedisStore using the given client. The caller
// owns the client's lifecycle.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

// Save writes the record under the token with the given TTL.
func (s *RedisStore) Save(ctx context.Context, token string, rec Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}

	return nil
}

// Load reads the record stored under the token.
func (s *RedisStore) Load(ctx context.Context, token string) (Record, bool, error) {
	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("failed to read session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("failed to decode session record: %w", err)
	}

	return rec, true, nil
}

// Delete removes the record stored under the token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}

	return nil
}
