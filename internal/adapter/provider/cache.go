package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cadence/internal/domain/llm"
	"cadence/internal/platform/logger"
)

// Cache stores generated text by key
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// NoopCache never hits
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (NoopCache) Set(context.Context, string, string, time.Duration) error { return nil }

// RedisCache stores generations in redis under a key prefix
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the redis URL. An empty URL yields a NoopCache.
func NewRedisCache(url, prefix string) (Cache, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return NoopCache{}, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts), prefix: prefix}, nil
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":gen:" + k
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	s, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// Ping checks the redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the redis client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedGenerator memoizes successful generations. Cache failures never fail a call.
type CachedGenerator struct {
	next  llm.TextGenerator
	cache Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedGenerator wraps next with cache
func NewCachedGenerator(next llm.TextGenerator, cache Cache, ttl time.Duration, log *logger.Logger) *CachedGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedGenerator{next: next, cache: cache, ttl: ttl, log: log}
}

func (g *CachedGenerator) Generate(ctx context.Context, prompt string, provider llm.Provider, opts llm.GenerateOptions) (string, error) {
	key := CacheKey(provider, opts.SystemPrompt, prompt)

	if text, ok, err := g.cache.Get(ctx, key); err != nil {
		g.log.Warn("generation cache read failed", "provider", provider, "error", err)
	} else if ok {
		return text, nil
	}

	text, err := g.next.Generate(ctx, prompt, provider, opts)
	if err != nil {
		return "", err
	}

	if err := g.cache.Set(ctx, key, text, g.ttl); err != nil {
		g.log.Warn("generation cache write failed", "provider", provider, "error", err)
	}
	return text, nil
}

// CacheKey hashes the inputs that determine a generation
func CacheKey(provider llm.Provider, systemPrompt, prompt string) string {
	sum := sha256.Sum256([]byte(string(provider) + "|" + systemPrompt + "|" + prompt))
	return hex.EncodeToString(sum[:])
}
