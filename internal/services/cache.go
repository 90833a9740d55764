package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

const cacheKeyPrefix = "contentgen:result:"

// ResponseCache stores successful generations so identical requests do not
// hit the paid model twice.
type ResponseCache interface {
	Get(ctx context.Context, key string) (*Generation, bool, error)
	Set(ctx context.Context, key string, g *Generation) error
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Generation, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var g Generation
	if err := json.Unmarshal(raw, &g); err != nil {
		// A corrupt entry is treated as a miss and overwritten later
		return nil, false, nil
	}
	return &g, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, g *Generation) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// cacheKey digests the request fields. Text fields are whitespace-normalized
// so trivially different pastes share an entry.
func cacheKey(kind string, fields ...string) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(kind))
	for _, f := range fields {
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(strings.Fields(f), " ")))
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
