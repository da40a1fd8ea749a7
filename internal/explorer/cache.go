package explorer

import (
	"context"
	"sync"
	"time"
)

// ScanCache memoizes aggregated scan results keyed by query fingerprint. Its
// TTL is meant to sit around the ledger's block interval, so a caller polling
// the same query cannot trigger a full window scan more often than new blocks
// can plausibly appear. Entries are keyed only by fingerprint and are never
// partially shared across query kinds.
//
// Implementations must be safe for use by multiple concurrent scans.
type ScanCache interface {
	// GetOrCompute returns the stored result for fingerprint when a live
	// entry exists, without invoking compute. On a miss or an expired entry
	// it runs compute, stores the outcome under the fingerprint with the
	// given ttl, and returns it. Errors from compute are returned as-is and
	// never cached.
	GetOrCompute(ctx context.Context, fingerprint string, ttl time.Duration, compute func(context.Context) (ScanResult, error)) (ScanResult, error)
}

// memoryCacheEntry is a stored result with its expiry instant.
type memoryCacheEntry struct {
	result    ScanResult
	expiresAt time.Time
}

// MemoryScanCache is the default in-process ScanCache. For deployments
// running several instances behind a balancer, the Redis adapter under
// internal/infra/storage/redis shares entries across processes instead.
type MemoryScanCache struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry

	now func() time.Time // injectable clock for tests
}

// Compile-time assertion that MemoryScanCache implements ScanCache.
var _ ScanCache = (*MemoryScanCache)(nil)

// NewMemoryScanCache creates an empty in-memory scan cache.
func NewMemoryScanCache() *MemoryScanCache {
	return &MemoryScanCache{
		entries: make(map[string]memoryCacheEntry),
		now:     time.Now,
	}
}

// GetOrCompute implements the ScanCache interface. The compute function runs
// outside the cache lock, so a slow scan for one fingerprint never blocks
// hits on other keys.
func (c *MemoryScanCache) GetOrCompute(ctx context.Context, fingerprint string, ttl time.Duration, compute func(context.Context) (ScanResult, error)) (ScanResult, error) {
	c.mu.Lock()
	if entry, ok := c.entries[fingerprint]; ok {
		if c.now().Before(entry.expiresAt) {
			c.mu.Unlock()
			return entry.result, nil
		}
		delete(c.entries, fingerprint)
	}
	c.mu.Unlock()

	result, err := compute(ctx)
	if err != nil {
		return ScanResult{}, err
	}

	c.mu.Lock()
	c.entries[fingerprint] = memoryCacheEntry{
		result:    result,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()

	return result, nil
}

// nopScanCache disables memoization; every call recomputes. Used when a
// caller explicitly opts out of caching.
type nopScanCache struct{}

var _ ScanCache = nopScanCache{}

func (nopScanCache) GetOrCompute(ctx context.Context, _ string, _ time.Duration, compute func(context.Context) (ScanResult, error)) (ScanResult, error) {
	return compute(ctx)
}
