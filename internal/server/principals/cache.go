// Package principals caches resolved principals in Redis so that the access
// gate does not hit PostgreSQL on every request.
package principals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "aura:principal:"

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// Get returns (nil, nil) when subject is not cached.
func (c *RedisCache) Get(ctx context.Context, subject string) (*models.Principal, error) {
	data, err := c.rdb.Get(ctx, key(subject)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var p models.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode cached principal: %w", err)
	}
	return &p, nil
}

func (c *RedisCache) Set(ctx context.Context, p models.Principal) error {
	if p.SubjectID == "" {
		return errors.New("principal has no subject")
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(p.SubjectID), payload, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, subject string) error {
	return c.rdb.Del(ctx, key(subject)).Err()
}

func key(subject string) string {
	return keyPrefix + subject
}
