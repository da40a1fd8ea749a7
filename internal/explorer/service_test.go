package explorer

import (
	"testing"
	"time"

	"github.com/chainscope/chainscope/internal/pkg/logger"
	"github.com/chainscope/chainscope/internal/pkg/resilience/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Scans log when a result degrades to partial, so the package logger must
	// be initialized before any test runs.
	_ = logger.Init(logger.WithLevel("error"))
}

// fastRetry keeps failing-path tests quick: a single attempt, no backoff.
func fastRetry() retry.Retry {
	return retry.New(retry.WithAttempts(1), retry.WithDelay(time.Millisecond))
}

func TestNew(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		svc := New(newFakeLedger(10, 1))

		require.NotNil(t, svc)
		assert.Equal(t, defaultWindowSize, svc.windowSize)
		assert.Equal(t, maxWindowHardCap, svc.maxWindow)
		assert.Equal(t, defaultCacheTTL, svc.cacheTTL)
		assert.Equal(t, defaultCallTimeout, svc.callTimeout)
		assert.NotNil(t, svc.cache)
		assert.NotNil(t, svc.limiter)
		assert.NotNil(t, svc.retry)
	})

	t.Run("honors options", func(t *testing.T) {
		cache := NewMemoryScanCache()
		svc := New(newFakeLedger(10, 1),
			WithScanCache(cache),
			WithWindowSize(5),
			WithMaxWindow(20),
			WithCacheTTL(time.Minute),
			WithCallTimeout(time.Second),
			WithConcurrency(4),
		)

		assert.Equal(t, 5, svc.windowSize)
		assert.Equal(t, 20, svc.maxWindow)
		assert.Equal(t, time.Minute, svc.cacheTTL)
		assert.Equal(t, time.Second, svc.callTimeout)
		assert.Same(t, cache, svc.cache.(*MemoryScanCache))
	})

	t.Run("clamps max window to hard cap", func(t *testing.T) {
		svc := New(newFakeLedger(10, 1), WithMaxWindow(10_000))
		assert.Equal(t, maxWindowHardCap, svc.maxWindow)
	})

	t.Run("max window never below window size", func(t *testing.T) {
		svc := New(newFakeLedger(10, 1), WithWindowSize(30), WithMaxWindow(10))
		assert.Equal(t, 30, svc.maxWindow)
	})

	t.Run("without scan cache recomputes every call", func(t *testing.T) {
		node := newFakeLedger(20, 1)
		svc := New(node, WithoutScanCache())

		_, err := svc.ScanRecentTransactions(t.Context(), 5)
		require.NoError(t, err)
		first := node.totalCalls()

		_, err = svc.ScanRecentTransactions(t.Context(), 5)
		require.NoError(t, err)

		assert.Greater(t, node.totalCalls(), first)
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, clampLimit(0))
	assert.Equal(t, defaultLimit, clampLimit(-3))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, maxLimit, clampLimit(5_000))
}
