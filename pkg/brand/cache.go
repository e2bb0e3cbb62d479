package brand

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache is the interface for brand caching implementations.
// Only brand identity records are cacheable; access snapshots and
// decisions are evaluated fresh per request and must never be cached.
type Cache interface {
	// Get retrieves a brand from cache by key.
	Get(ctx context.Context, key string) (*Brand, bool)

	// Set stores a brand in cache with the given TTL.
	Set(ctx context.Context, key string, b *Brand, ttl time.Duration)

	// Delete removes a brand from cache.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize caps the in-memory cache when no size is given.
const DefaultCacheSize = 1000

// sweepInterval is how often expired entries are purged in the
// background. Expired entries found on Get are purged immediately; the
// sweep only reclaims memory for keys nobody asks for anymore.
const sweepInterval = time.Minute

type cacheEntry struct {
	key       string
	brand     *Brand
	expiresAt time.Time
}

// memoryCache is an LRU cache with per-entry TTLs. Recency order lives
// in a doubly linked list (front is most recent), so hits, inserts, and
// evictions are all O(1).
type memoryCache struct {
	mu      sync.Mutex
	byKey   map[string]*list.Element
	order   *list.List
	maxSize int

	stop   chan struct{}
	done   chan struct{}
	closed bool
}

// NewInMemoryCache creates an in-memory cache with the default size
// limit and a background expiry sweep.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache holding at most
// maxSize entries; the least recently used entry is evicted first.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	c := &memoryCache{
		byKey:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *memoryCache) Get(_ context.Context, key string) (*Brand, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byKey[key]
	if !ok {
		return nil, false
	}

	entry := el.Value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.remove(el)
		return nil, false
	}

	c.order.MoveToFront(el)
	return entry.brand, true
}

func (c *memoryCache) Set(_ context.Context, key string, b *Brand, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byKey[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.brand = b
		entry.expiresAt = time.Now().Add(ttl)
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.maxSize {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}

	c.byKey[key] = c.order.PushFront(&cacheEntry{
		key:       key,
		brand:     b,
		expiresAt: time.Now().Add(ttl),
	})
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byKey[key]; ok {
		c.remove(el)
	}
}

// Close stops the expiry sweep and waits for it to finish. Safe to call
// more than once.
func (c *memoryCache) Close() error {
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

// remove unlinks an entry; callers hold the lock.
func (c *memoryCache) remove(el *list.Element) {
	entry := c.order.Remove(el).(*cacheEntry)
	delete(c.byKey, entry.key)
}

func (c *memoryCache) sweep() {
	ticker := time.NewTicker(sweepInterval)
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

func (c *memoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var el, prev *list.Element
	for el = c.order.Back(); el != nil; el = prev {
		prev = el.Prev()
		if now.After(el.Value.(*cacheEntry).expiresAt) {
			c.remove(el)
		}
	}
}

// noOpCache never stores anything. Used when brand caching is disabled
// and in tests that need cold lookups on every request.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache {
	return &noOpCache{}
}

func (noOpCache) Get(context.Context, string) (*Brand, bool) { return nil, false }

func (noOpCache) Set(context.Context, string, *Brand, time.Duration) {}

func (noOpCache) Delete(context.Context, string) {}

func (noOpCache) Close() error { return nil }
