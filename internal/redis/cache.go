package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"account-service/internal/domain/user"

	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - user:{email} - profile cache, invalidated on update and delete

// CacheConfig contains configuration for caching
type CacheConfig struct {
	ProfileTTL time.Duration
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		ProfileTTL: 5 * time.Minute,
	}
}

// CacheStore handles caching in Redis
type CacheStore struct {
	client *goredis.Client
	config CacheConfig
}

// NewCacheStore creates a new cache store
func NewCacheStore(client *goredis.Client, config CacheConfig) *CacheStore {
	if config.ProfileTTL <= 0 {
		config.ProfileTTL = DefaultCacheConfig().ProfileTTL
	}
	return &CacheStore{
		client: client,
		config: config,
	}
}

func profileKey(email string) string {
	return fmt.Sprintf("user:%s", email)
}

// GetProfile retrieves a cached profile. A miss returns nil, nil.
func (c *CacheStore) GetProfile(ctx context.Context, email string) (*user.User, error) {
	data, err := c.client.Get(ctx, profileKey(email)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var u user.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetProfile stores a profile in cache
func (c *CacheStore) SetProfile(ctx context.Context, u *user.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(u.Email), data, c.config.ProfileTTL).Err()
}

// InvalidateProfile removes a profile from cache
func (c *CacheStore) InvalidateProfile(ctx context.Context, email string) error {
	return c.client.Del(ctx, profileKey(email)).Err()
}
