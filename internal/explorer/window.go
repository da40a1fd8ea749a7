package explorer

import (
	"context"
	"sync"
)

// fetchBlock retrieves a single block through the limiter, with the per-call
// timeout and the bounded per-item retry. It is the unit of work the window
// fetcher fans out.
func (s *service) fetchBlock(ctx context.Context, height uint64, includeTxs bool) (*BlockSummary, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	var block *BlockSummary
	err := s.retry.Execute(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		b, err := s.client.BlockByHeight(callCtx, height, includeTxs)
		if err != nil {
			return err
		}
		block = b
		return nil
	})
	return block, err
}

// fetchWindow fetches the contiguous descending height range starting at
// start and covering size heights, clamped so heights never go below zero.
// Each height is fetched as an independent concurrent operation through the
// limiter; a failure on one height yields a FetchFailure marker and does not
// abort the others.
//
// Returned blocks are ordered by height descending regardless of the
// completion order of the underlying fetches: every height writes into its
// own pre-assigned slot.
func (s *service) fetchWindow(ctx context.Context, start uint64, size int, includeTxs bool) ([]BlockSummary, []FetchFailure) {
	if size < 1 {
		return nil, nil
	}

	if avail := start + 1; avail < uint64(size) {
		size = int(avail)
	}

	type slot struct {
		block *BlockSummary
		err   error
	}

	slots := make([]slot, size)

	var wg sync.WaitGroup
	for i := range size {
		wg.Add(1)
		go func() {
			defer wg.Done()
			block, err := s.fetchBlock(ctx, start-uint64(i), includeTxs)
			slots[i] = slot{block: block, err: err}
		}()
	}
	wg.Wait()

	blocks := make([]BlockSummary, 0, size)
	var failures []FetchFailure
	for i, sl := range slots {
		if sl.err != nil {
			failures = append(failures, FetchFailure{Height: start - uint64(i), Err: sl.err})
			continue
		}
		blocks = append(blocks, *sl.block)
	}
	return blocks, failures
}

// headHeight queries the head of the ledger. Unlike the per-height fetches, a
// failure here fails the whole scan: without a head there is nothing to scan.
func (s *service) headHeight(ctx context.Context) (uint64, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return 0, err
	}
	defer s.limiter.Release()

	var head uint64
	err := s.retry.Execute(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		h, err := s.client.HeadHeight(callCtx)
		if err != nil {
			return err
		}
		head = h
		return nil
	})
	return head, err
}
