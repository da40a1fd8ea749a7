package explorer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// NetworkStats implements the Service interface. The probe issues its point
// queries concurrently and follows a deliberately simpler failure policy than
// the windowed scanners: every field is required for this view, so the first
// failed sub-query fails the probe as a whole.
func (s *service) NetworkStats(ctx context.Context) (NetworkStats, error) {
	var stats NetworkStats

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		head, err := s.headHeight(gctx)
		if err != nil {
			return err
		}
		stats.HeadHeight = head
		return nil
	})

	g.Go(func() error {
		if err := s.limiter.Acquire(gctx); err != nil {
			return err
		}
		defer s.limiter.Release()

		return s.retry.Execute(gctx, func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.callTimeout)
			defer cancel()

			price, err := s.client.GasPrice(callCtx)
			if err != nil {
				return err
			}
			stats.GasPrice = price
			return nil
		})
	})

	g.Go(func() error {
		if err := s.limiter.Acquire(gctx); err != nil {
			return err
		}
		defer s.limiter.Release()

		return s.retry.Execute(gctx, func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.callTimeout)
			defer cancel()

			peers, err := s.client.PeerCount(callCtx)
			if err != nil {
				return err
			}
			stats.PeerCount = peers
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		return NetworkStats{}, classifyUpstream(err)
	}

	// Difficulty lives on the head block header, which requires the head
	// height first. Still a required field: a failure aborts the probe.
	block, err := s.fetchBlock(ctx, stats.HeadHeight, false)
	if err != nil {
		return NetworkStats{}, classifyUpstream(err)
	}
	stats.Difficulty = block.Difficulty

	return stats, nil
}
