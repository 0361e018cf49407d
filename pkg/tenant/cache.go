package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache is the interface for tenant caching implementations.
type Cache interface {
	// Get retrieves a tenant from cache by key.
	Get(ctx context.Context, key string) (*Info, bool)

	// Set stores a tenant in cache with the given TTL.
	Set(ctx context.Context, key string, info *Info, ttl time.Duration)

	// Delete removes a tenant from cache.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// inMemoryCache is the default in-memory cache implementation with
// periodic expiry cleanup.
type inMemoryCache struct {
	mu     sync.RWMutex
	items  map[string]cacheItem
	stop   chan struct{}
	done   chan struct{}
	closed bool
}

type cacheItem struct {
	info      *Info
	expiresAt time.Time
}

// NewInMemoryCache creates a new in-memory cache with automatic cleanup.
func NewInMemoryCache() Cache {
	c := &inMemoryCache{
		items: make(map[string]cacheItem),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (*Info, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		c.Delete(ctx, key)
		return nil, false
	}
	return item.info, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, info *Info, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{info: info, expiresAt: time.Now().Add(ttl)}
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *inMemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *inMemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}

func (c *inMemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// CachedProvider decorates a Provider with a Cache. Only successful
// resolutions are cached; a missing tenant is re-queried on the next
// request so newly created storefronts appear without a restart.
type CachedProvider struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
}

// NewCachedProvider wraps provider with cache. A nil cache falls back
// to a fresh in-memory cache.
func NewCachedProvider(provider Provider, cache Cache, ttl time.Duration) *CachedProvider {
	if cache == nil {
		cache = NewInMemoryCache()
	}
	return &CachedProvider{provider: provider, cache: cache, ttl: ttl}
}

func (p *CachedProvider) Resolve(ctx context.Context, subdomain string) (*Info, error) {
	key := normalize(subdomain)
	if info, ok := p.cache.Get(ctx, key); ok {
		return info, nil
	}

	info, err := p.provider.Resolve(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	p.cache.Set(ctx, key, info, p.ttl)
	return info, nil
}
