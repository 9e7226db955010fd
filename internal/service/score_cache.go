package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScoreCache guarda puntuaciones de contenido ya evaluadas para no repetir
// llamadas al LLM sobre el mismo texto.
type ScoreCache interface {
	Get(key string) (int, bool, error)
	Set(key string, score int, ttl time.Duration) error
}

type memoryScoreCache struct {
	mu    sync.Mutex
	items map[string]memoryScoreEntry
}

type memoryScoreEntry struct {
	score     int
	expiresAt time.Time
}

func NewMemoryScoreCache() ScoreCache {
	return &memoryScoreCache{items: make(map[string]memoryScoreEntry)}
}

func (c *memoryScoreCache) Get(key string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return 0, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, key)
		return 0, false, nil
	}
	return entry.score, true, nil
}

func (c *memoryScoreCache) Set(key string, score int, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryScoreEntry{score: score, expiresAt: time.Now().UTC().Add(ttl)}
	return nil
}

type redisScoreCache struct {
	client *redis.Client
	prefix string
}

func NewRedisScoreCache(client *redis.Client) ScoreCache {
	if client == nil {
		return nil
	}
	return &redisScoreCache{
		client: client,
		prefix: "scoring:content:",
	}
}

func (c *redisScoreCache) Get(key string) (int, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	score, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

func (c *redisScoreCache) Set(key string, score int, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, strconv.Itoa(score), ttl).Err()
}

// CachedEvaluator decora un Evaluator con cache por hash de contenido.
// Solo cachea cuando el evaluador real esta disponible: el fallback
// deterministico no necesita cache y no debe quedar pegado tras una
// reconfiguracion del proveedor.
type CachedEvaluator struct {
	inner Evaluator
	cache ScoreCache
	ttl   time.Duration
}

func NewCachedEvaluator(inner Evaluator, cache ScoreCache, ttl time.Duration) *CachedEvaluator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedEvaluator{inner: inner, cache: cache, ttl: ttl}
}

func (e *CachedEvaluator) Available() bool {
	return e.inner.Available()
}

func (e *CachedEvaluator) Evaluate(ctx context.Context, content string, kind EvaluationKind, maxScore int) int {
	if e.cache == nil || !e.inner.Available() {
		return e.inner.Evaluate(ctx, content, kind, maxScore)
	}

	key := scoreCacheKey(content, kind, maxScore)
	if score, ok, err := e.cache.Get(key); err == nil && ok {
		return score
	}

	score := e.inner.Evaluate(ctx, content, kind, maxScore)
	_ = e.cache.Set(key, score, e.ttl)
	return score
}

func scoreCacheKey(content string, kind EvaluationKind, maxScore int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", kind, maxScore, content)))
	return hex.EncodeToString(sum[:])
}
