package explorer

import (
	"context"
	"sync"

	"github.com/chainscope/chainscope/internal/pkg/types"
)

// fetchReceipt resolves a single receipt through the limiter with the
// per-call timeout and bounded retry.
func (s *service) fetchReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	var receipt *Receipt
	err := s.retry.Execute(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		r, err := s.client.ReceiptByHash(callCtx, txHash)
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	return receipt, err
}

// resolveReceipts resolves receipts for the given transactions concurrently,
// one independent fetch per unique hash. A hash whose receipt cannot be
// resolved is reported as a FetchFailure; the transaction it belongs to is
// later defaulted to assumed-successful rather than failing the scan.
func (s *service) resolveReceipts(ctx context.Context, txs []TransactionRecord) (map[string]Receipt, []FetchFailure) {
	hashSet := types.NewSet[string]()
	for _, tx := range txs {
		hashSet.Add(tx.Hash)
	}
	hashes := hashSet.ToSlice()

	type slot struct {
		receipt *Receipt
		err     error
	}

	slots := make([]slot, len(hashes))

	var wg sync.WaitGroup
	for i, hash := range hashes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := s.fetchReceipt(ctx, hash)
			slots[i] = slot{receipt: receipt, err: err}
		}()
	}
	wg.Wait()

	receipts := make(map[string]Receipt, len(hashes))
	var failures []FetchFailure
	for i, sl := range slots {
		if sl.err != nil {
			failures = append(failures, FetchFailure{TxHash: hashes[i], Err: sl.err})
			continue
		}
		receipts[hashes[i]] = *sl.receipt
	}
	return receipts, failures
}

// applyReceipts annotates transactions with their resolved receipts. A
// transaction without a resolved receipt keeps zero gas used and is marked
// TxStatusAssumed so callers can tell confirmed from assumed outcomes.
func applyReceipts(txs []TransactionRecord, receipts map[string]Receipt) {
	for i := range txs {
		receipt, ok := receipts[txs[i].Hash]
		if !ok {
			txs[i].Status = TxStatusAssumed
			continue
		}

		txs[i].GasUsed = receipt.GasUsed
		txs[i].ContractAddress = receipt.ContractAddress
		txs[i].Logs = receipt.Logs
		if receipt.Success {
			txs[i].Status = TxStatusSuccess
		} else {
			txs[i].Status = TxStatusFailed
		}
	}
}
