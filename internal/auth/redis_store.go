// auth/redis_store.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisTokenStore implements TokenStore using Redis. Selected via
// configuration when the token record should survive outside the
// process working directory.
type RedisTokenStore struct {
	client          redis.UniversalClient
	prefix          string
	defaultTenantID string
	healthy         func() bool
}

// NewRedisTokenStore creates a Redis-backed token store. healthy gates
// calls so a down Redis surfaces as ErrStorageUnavailable instead of a
// hanging connection attempt.
func NewRedisTokenStore(client redis.UniversalClient, prefix, defaultTenantID string, healthy func() bool) *RedisTokenStore {
	if healthy == nil {
		healthy = func() bool { return true }
	}
	return &RedisTokenStore{
		client:          client,
		prefix:          prefix,
		defaultTenantID: defaultTenantID,
		healthy:         healthy,
	}
}

func (s *RedisTokenStore) key() string {
	return fmt.Sprintf("%s:xero:token", s.prefix)
}

// Save stores the full token record, replacing any prior one
func (s *RedisTokenStore) Save(accessToken, refreshToken string, expiresIn int, tenantID string) error {
	if !s.healthy() {
		return fmt.Errorf("%w: redis unhealthy", ErrStorageUnavailable)
	}

	if tenantID == "" {
		if prior, err := s.Load(); err == nil && prior != nil {
			tenantID = prior.TenantID
		}
	}
	if tenantID == "" {
		tenantID = s.defaultTenantID
	}

	token := Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    float64(time.Now().Add(time.Duration(expiresIn) * time.Second).Unix()),
		TenantID:     tenantID,
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	// No TTL: the refresh token outlives the access token by months and
	// the record is the only copy of it.
	if err := s.client.Set(context.Background(), s.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}

// Load retrieves the token record; a missing key is not an error
func (s *RedisTokenStore) Load() (*Token, error) {
	if !s.healthy() {
		return nil, fmt.Errorf("%w: redis unhealthy", ErrStorageUnavailable)
	}

	data, err := s.client.Get(context.Background(), s.key()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: corrupt token record: %v", ErrStorageUnavailable, err)
	}

	return &token, nil
}

// Clear removes the token record; idempotent
func (s *RedisTokenStore) Clear() error {
	if !s.healthy() {
		return fmt.Errorf("%w: redis unhealthy", ErrStorageUnavailable)
	}

	if err := s.client.Del(context.Background(), s.key()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}
