package service

import (
	"ai_tutor_backend/pkg/monitoring"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

type cacheEntry struct {
	value    string
	storedAt time.Time
}

// ResponseCache AI 响应的 TTL 缓存。内存层为准，Redis（如启用）只做
// 尽力而为的镜像。同一 key 的并发未命中会各自计算一次，不做去重。
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	rdb     *redis.Client
}

func NewResponseCache(ttl time.Duration, rdb *redis.Client) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		rdb:     rdb,
	}
}

// CacheKey 由语义相关的输入推导出确定性缓存键
func CacheKey(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(h[:])
}

// GetOrCompute 命中时直接返回；未命中时执行 compute，结果写入缓存后返回
func (c *ResponseCache) GetOrCompute(ctx context.Context, key string, compute func() (string, error)) (string, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Since(entry.storedAt) < c.ttl {
		monitoring.CacheHitCounter.WithLabelValues("hit").Inc()
		return entry.value, nil
	}

	if c.rdb != nil {
		if value, err := c.rdb.Get(ctx, "ai_cache:"+key).Result(); err == nil {
			monitoring.CacheHitCounter.WithLabelValues("redis_hit").Inc()
			c.store(key, value)
			return value, nil
		}
	}

	monitoring.CacheHitCounter.WithLabelValues("miss").Inc()

	value, err := compute()
	if err != nil {
		return "", err
	}

	c.store(key, value)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, "ai_cache:"+key, value, c.ttl).Err(); err != nil {
			// 镜像失败不影响主流程
			monitoring.CacheHitCounter.WithLabelValues("redis_store_error").Inc()
		}
	}

	return value, nil
}

func (c *ResponseCache) store(key, value string) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, storedAt: time.Now()}
	c.mu.Unlock()
}

// Sweep 移除过期条目，由后台定时任务调用
func (c *ResponseCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if time.Since(entry.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
