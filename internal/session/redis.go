package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nnrgconnect/backend/internal/pkg/apperrors"
)

const sessionKeyPrefix = "session:"

// RedisStore persists device sessions in Redis so they survive process
// restarts. Keys expire after the configured TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Put(ctx context.Context, deviceID string, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := sessionKeyPrefix + deviceID
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return apperrors.StorageError("session put", deviceID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, deviceID string) (*Session, error) {
	key := sessionKeyPrefix + deviceID
	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, apperrors.StorageError("session get", deviceID, err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Clear(ctx context.Context, deviceID string) error {
	key := sessionKeyPrefix + deviceID
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.StorageError("session clear", deviceID, err)
	}
	return nil
}
