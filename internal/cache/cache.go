// Package cache wraps the Redis client for the small set of keys this
// service keeps out of MySQL: checkout idempotency claims and login
// session tokens.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

const (
	idempotencyTTL = 24 * time.Hour
	variantTTL     = 10 * time.Minute
)

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// ClaimIdempotencyKey atomically claims a checkout idempotency key.
// Returns false when the key was already claimed within the TTL.
func (s *Store) ClaimIdempotencyKey(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, fmt.Sprintf("idempotent-key:%s", key), "exists", idempotencyTTL).Result()
}

func (s *Store) SetSessionToken(ctx context.Context, email, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(email), token, ttl).Err()
}

// GetSessionToken returns the cached token, or "" when the session has
// expired or never existed.
func (s *Store) GetSessionToken(ctx context.Context, email string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (s *Store) DeleteSessionToken(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, sessionKey(email)).Err()
}

func sessionKey(email string) string {
	return fmt.Sprintf("session:%s", email)
}

// GetVariant returns the cached variant, or nil on a miss.
func (s *Store) GetVariant(ctx context.Context, id int64) (*entity.Variant, error) {
	raw, err := s.rdb.Get(ctx, variantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var v entity.Variant
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) SetVariant(ctx context.Context, v *entity.Variant) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, variantKey(v.ID), raw, variantTTL).Err()
}

// InvalidateVariant drops the cached row after a write or stock movement.
func (s *Store) InvalidateVariant(ctx context.Context, id int64) error {
	return s.rdb.Del(ctx, variantKey(id)).Err()
}

func variantKey(id int64) string {
	return fmt.Sprintf("variant:%d", id)
}
