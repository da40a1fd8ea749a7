package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkStats(t *testing.T) {
	t.Run("assembles the composite snapshot", func(t *testing.T) {
		svc := New(newFakeLedger(100, 1))

		stats, err := svc.NetworkStats(t.Context())

		require.NoError(t, err)
		assert.Equal(t, uint64(100), stats.HeadHeight)
		assert.Equal(t, "1000000000", stats.GasPrice)
		assert.Equal(t, uint64(8), stats.PeerCount)
		assert.Equal(t, "1234567", stats.Difficulty)
	})

	t.Run("any failed sub-query fails the probe as a whole", func(t *testing.T) {
		cases := map[string]func(*fakeLedger){
			"head height": func(f *fakeLedger) { f.failHead = true },
			"gas price":   func(f *fakeLedger) { f.failGasPrice = true },
			"peer count":  func(f *fakeLedger) { f.failPeers = true },
			"head block":  func(f *fakeLedger) { f.failHeights.Add(100) },
		}

		for name, breakIt := range cases {
			t.Run(name, func(t *testing.T) {
				node := newFakeLedger(100, 1)
				breakIt(node)
				svc := New(node, WithRetry(fastRetry()))

				_, err := svc.NetworkStats(t.Context())
				assert.ErrorIs(t, err, ErrUpstreamUnavailable)
			})
		}
	})
}
