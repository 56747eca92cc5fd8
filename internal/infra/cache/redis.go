package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/400brands/brand-doctor/internal/domain/brand"
)

const keyPrefix = "brand-doctor:analysis:"

// Redis stores finished analyses as JSON with a TTL.
type Redis struct {
	Client *redis.Client
}

func NewRedis(addr, password string, db int) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &Redis{Client: rdb}
}

// Key hashes the normalized request key so brand names never reach redis verbatim.
func Key(k string) string {
	sum := sha256.Sum256([]byte(k))
	return keyPrefix + hex.EncodeToString(sum[:16])
}

func (c *Redis) Get(ctx context.Context, key string) (*brand.Analysis, bool, error) {
	raw, err := c.Client.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var a brand.Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false, fmt.Errorf("decode cached analysis: %w", err)
	}
	return &a, true, nil
}

// Set with ttl <= 0 is a no-op; analyses are never cached forever.
func (c *Redis) Set(ctx context.Context, key string, a *brand.Analysis, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, Key(key), b, ttl).Err()
}

func (c *Redis) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Redis) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
