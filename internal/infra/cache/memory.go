package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryRegionCache はTTL付きのインメモリ地域IDキャッシュ。
// usecase.RegionCache を満たす。共有ストアに替えるときはここだけ差し替える。
type MemoryRegionCache struct {
	mu    sync.RWMutex
	items map[string]entry
}

func NewMemoryRegionCache() *MemoryRegionCache {
	return &MemoryRegionCache{items: map[string]entry{}}
}

func (c *MemoryRegionCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		//期限切れはmissとして扱う（掃除は次のSetに任せる）
		return "", false, nil
	}
	return e.value, true, nil
}

func (c *MemoryRegionCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
