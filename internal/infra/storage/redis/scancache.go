package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chainscope/chainscope/internal/explorer"
	"github.com/chainscope/chainscope/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// scanCacheKeyPrefix is the namespace prefix for all memoized scan results.
const scanCacheKeyPrefix = "explorer"

// scanCacheKey constructs the Redis key for a query fingerprint. The format is:
//
//	"explorer:scan:<fingerprint>"
func scanCacheKey(fingerprint string) string {
	return fmt.Sprintf("%s:scan:%s", scanCacheKeyPrefix, fingerprint)
}

// GetOrCompute implements the explorer.ScanCache interface on top of Redis,
// sharing memoized scan results across explorer instances.
//
// A stored entry is returned without invoking compute. On a miss the result
// is computed, stored under the fingerprint with the given TTL, and returned.
// Redis being unreachable never fails a scan: the cache degrades to computing
// every call and logs the store failure.
func (c *client) GetOrCompute(ctx context.Context, fingerprint string, ttl time.Duration, compute func(context.Context) (explorer.ScanResult, error)) (explorer.ScanResult, error) {
	key := scanCacheKey(fingerprint)

	payload, err := c.conn.Get(ctx, key).Bytes()
	if err == nil {
		var result explorer.ScanResult
		if err := json.Unmarshal(payload, &result); err == nil {
			return result, nil
		}
		// Undecodable entry, treat as a miss and overwrite below.
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn(ctx, "scan cache lookup failed, recomputing", "key", key, "error", err)
	}

	result, err := compute(ctx)
	if err != nil {
		return explorer.ScanResult{}, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return explorer.ScanResult{}, fmt.Errorf("encoding scan result for cache: %w", err)
	}

	if err := c.conn.Set(ctx, key, encoded, ttl).Err(); err != nil {
		logger.Warn(ctx, "scan cache store failed", "key", key, "error", err)
	}

	return result, nil
}

// Compile-time assertion to ensure client implements the ScanCache interface.
var _ explorer.ScanCache = new(client)
