package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Entry is a cached generation result.
type Entry struct {
	SQL         string `json:"sql"`
	Description string `json:"desc"`
}

// SQLCache stores generated SQL keyed by the question that produced it.
// Cached SQL is still untrusted; callers validate it like fresh output.
type SQLCache interface {
	Get(ctx context.Context, question string) (*Entry, bool)
	Set(ctx context.Context, question string, entry Entry) error
	Clear(ctx context.Context) (int, error)
}

type RedisSQLCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewRedisSQLCache(client *redis.Client, prefix string, ttl time.Duration, logger *zerolog.Logger) *RedisSQLCache {
	return &RedisSQLCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

// Key derives the cache key from the question, ignoring case and repeated
// whitespace.
func Key(prefix string, question string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(question), " "))
	sum := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(sum[:])
}

// Get treats every Redis failure as a miss.
func (c *RedisSQLCache) Get(ctx context.Context, question string) (*Entry, bool) {
	data, err := c.client.Get(ctx, Key(c.prefix, question)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("sql cache read failed")
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn().Err(err).Msg("sql cache entry is corrupt")
		return nil, false
	}

	return &entry, true
}

func (c *RedisSQLCache) Set(ctx context.Context, question string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.client.Set(ctx, Key(c.prefix, question), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Clear removes every key under the cache prefix and returns how many were
// deleted.
func (c *RedisSQLCache) Clear(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		deleted int
	)

	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deleted += int(n)
		}

		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}
