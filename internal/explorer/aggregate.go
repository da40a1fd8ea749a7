package explorer

import (
	"cmp"
	"slices"
	"strings"
)

// assumedTxPerBlock is the multiplier behind the advisory total for
// transaction listings. The ledger node exposes no transaction count, so the
// estimate is head height times an assumed average fill. It can diverge
// arbitrarily from reality on uneven block fill and must never be presented
// as exact; results built from it carry EstimateApproximate.
const assumedTxPerBlock = 150

// sortTransactionsNewestFirst orders transactions by block height descending,
// then by position within the block descending. Given a fixed input window
// the order is fully deterministic, independent of fetch completion order.
func sortTransactionsNewestFirst(txs []TransactionRecord) {
	slices.SortStableFunc(txs, func(a, b TransactionRecord) int {
		if c := cmp.Compare(b.BlockHeight, a.BlockHeight); c != 0 {
			return c
		}
		return cmp.Compare(b.Position, a.Position)
	})
}

// sortContractsNewestFirst orders contracts by deployment height descending,
// breaking ties by address for determinism.
func sortContractsNewestFirst(contracts []ContractRecord) {
	slices.SortStableFunc(contracts, func(a, b ContractRecord) int {
		if c := cmp.Compare(b.Height, a.Height); c != 0 {
			return c
		}
		return strings.Compare(a.Address, b.Address)
	})
}

// truncate caps a result page at the caller's requested limit. A ScanResult
// never exceeds it.
func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// dedupeContracts collapses duplicate contract records discovered across
// overlapping scan windows. Records are keyed by address (case-insensitive);
// the occurrence with the lowest deployment height wins. Output order is
// unspecified; callers sort afterwards.
func dedupeContracts(contracts []ContractRecord) []ContractRecord {
	byAddress := make(map[string]ContractRecord, len(contracts))
	for _, c := range contracts {
		key := strings.ToLower(c.Address)
		if existing, ok := byAddress[key]; ok && existing.Height <= c.Height {
			continue
		}
		byAddress[key] = c
	}

	deduped := make([]ContractRecord, 0, len(byAddress))
	for _, c := range byAddress {
		deduped = append(deduped, c)
	}
	return deduped
}

// estimatedTransactionTotal returns the advisory transaction count for the
// whole ledger given its head height.
func estimatedTransactionTotal(headHeight uint64) uint64 {
	return headHeight * assumedTxPerBlock
}

// pageCount returns the number of pages needed to cover total records at the
// given page size.
func pageCount(total, pageSize uint64) uint64 {
	if pageSize == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
