package explorer

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BlockDetail implements the Service interface. The reference is either a
// decimal height or a "0x"-prefixed 32-byte hash; anything else is rejected
// with ErrInvalidInput before any remote call.
func (s *service) BlockDetail(ctx context.Context, ref string) (*BlockSummary, error) {
	if height, err := strconv.ParseUint(ref, 10, 64); err == nil {
		block, err := s.fetchBlock(ctx, height, true)
		if err != nil {
			return nil, classifyUpstream(err)
		}
		return block, nil
	}

	if err := validateHash(ref); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, classifyUpstream(err)
	}
	defer s.limiter.Release()

	var block *BlockSummary
	err := s.retry.Execute(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		b, err := s.client.BlockByHash(callCtx, ref)
		if err != nil {
			return err
		}
		block = b
		return nil
	})
	if err != nil {
		return nil, classifyUpstream(err)
	}
	return block, nil
}

// TransactionDetail implements the Service interface. The hash format is
// checked before any remote call. The receipt lookup is tolerant: when it
// cannot be resolved, the record is returned with TxStatusAssumed instead of
// failing the whole lookup.
func (s *service) TransactionDetail(ctx context.Context, hash string) (*TransactionRecord, error) {
	if err := validateHash(hash); err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, classifyUpstream(err)
	}

	var tx *TransactionRecord
	err := s.retry.Execute(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		t, err := s.client.TransactionByHash(callCtx, hash)
		if err != nil {
			return err
		}
		tx = t
		return nil
	})
	s.limiter.Release()
	if err != nil {
		return nil, classifyUpstream(err)
	}

	record := []TransactionRecord{*tx}
	receipts, _ := s.resolveReceipts(ctx, record)
	applyReceipts(record, receipts)

	return &record[0], nil
}

// AddressDetail implements the Service interface. Balance and code are
// fetched concurrently; both are required for the profile, so either failure
// fails the lookup. The profile is recomputed fresh on every call.
func (s *service) AddressDetail(ctx context.Context, address string) (*AddressProfile, error) {
	if err := validateAddress(address); err != nil {
		return nil, err
	}

	profile := AddressProfile{Address: strings.ToLower(address)}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.limiter.Acquire(gctx); err != nil {
			return err
		}
		defer s.limiter.Release()

		return s.retry.Execute(gctx, func() error {
			callCtx, cancel := context.WithTimeout(gctx, s.callTimeout)
			defer cancel()

			balance, err := s.client.Balance(callCtx, address)
			if err != nil {
				return err
			}
			profile.Balance = balance
			return nil
		})
	})

	g.Go(func() error {
		code, err := s.fetchCode(gctx, address)
		if err != nil {
			return err
		}
		if len(code) > 0 {
			profile.IsContract = true
			profile.Code = "0x" + hex.EncodeToString(code)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, classifyUpstream(err)
	}

	return &profile, nil
}
