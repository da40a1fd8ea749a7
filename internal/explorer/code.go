package explorer

import (
	"context"
	"sync"
)

// fetchCode retrieves the code deployed at an address through the limiter
// with the per-call timeout and bounded retry. An externally owned account
// yields an empty slice.
func (s *service) fetchCode(ctx context.Context, address string) ([]byte, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	var code []byte
	err := s.retry.Execute(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		c, err := s.client.Code(callCtx, address)
		if err != nil {
			return err
		}
		code = c
		return nil
	})
	return code, err
}

// fetchCodeSizes resolves deployed code sizes for a page of contracts
// concurrently. A failed fetch leaves that contract's size at zero and is
// reported as a FetchFailure, marking the surrounding result partial.
func (s *service) fetchCodeSizes(ctx context.Context, contracts []ContractRecord) (map[string]int, []FetchFailure) {
	type slot struct {
		size int
		err  error
	}

	slots := make([]slot, len(contracts))

	var wg sync.WaitGroup
	for i, contract := range contracts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := s.fetchCode(ctx, contract.Address)
			slots[i] = slot{size: len(code), err: err}
		}()
	}
	wg.Wait()

	sizes := make(map[string]int, len(contracts))
	var failures []FetchFailure
	for i, sl := range slots {
		if sl.err != nil {
			failures = append(failures, FetchFailure{Address: contracts[i].Address, Err: sl.err})
			continue
		}
		sizes[contracts[i].Address] = sl.size
	}
	return sizes, failures
}
