package explorer

import (
	"context"
	"testing"

	"github.com/chainscope/chainscope/internal/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWindow(t *testing.T) {
	t.Run("returns full window in descending order", func(t *testing.T) {
		svc := New(newFakeLedger(100, 2))

		blocks, failures := svc.fetchWindow(t.Context(), 100, 10, true)

		require.Empty(t, failures)
		require.Len(t, blocks, 10)
		for i, block := range blocks {
			assert.Equal(t, uint64(100-i), block.Height)
			assert.Len(t, block.Transactions, 2)
		}
	})

	t.Run("never returns more than the window size or duplicate heights", func(t *testing.T) {
		svc := New(newFakeLedger(50, 0))

		blocks, _ := svc.fetchWindow(t.Context(), 50, 7, false)

		assert.LessOrEqual(t, len(blocks), 7)
		seen := types.NewSet[uint64]()
		for _, block := range blocks {
			assert.False(t, seen.Has(block.Height), "duplicate height %d", block.Height)
			seen.Add(block.Height)
			assert.GreaterOrEqual(t, block.Height, uint64(44))
			assert.LessOrEqual(t, block.Height, uint64(50))
		}
	})

	t.Run("clamps at genesis", func(t *testing.T) {
		svc := New(newFakeLedger(100, 0))

		blocks, failures := svc.fetchWindow(t.Context(), 3, 10, false)

		require.Empty(t, failures)
		require.Len(t, blocks, 4)
		assert.Equal(t, uint64(3), blocks[0].Height)
		assert.Equal(t, uint64(0), blocks[3].Height)
	})

	t.Run("individual failures do not abort the window", func(t *testing.T) {
		node := newFakeLedger(100, 1)
		node.failHeights.Add(97, 94)
		svc := New(node, WithRetry(fastRetry()))

		blocks, failures := svc.fetchWindow(t.Context(), 100, 10, true)

		assert.Len(t, blocks, 8)
		require.Len(t, failures, 2)
		heights := []uint64{failures[0].Height, failures[1].Height}
		assert.ElementsMatch(t, []uint64{97, 94}, heights)
		for _, f := range failures {
			assert.ErrorIs(t, f.Err, errNodeDown)
		}
	})

	t.Run("canceled context yields failures not a hang", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		svc := New(newFakeLedger(100, 0), WithRetry(fastRetry()))
		blocks, failures := svc.fetchWindow(ctx, 100, 5, false)

		assert.Empty(t, blocks)
		assert.Len(t, failures, 5)
	})

	t.Run("non-positive size returns nothing", func(t *testing.T) {
		svc := New(newFakeLedger(100, 0))

		blocks, failures := svc.fetchWindow(t.Context(), 100, 0, false)
		assert.Nil(t, blocks)
		assert.Nil(t, failures)
	})
}
