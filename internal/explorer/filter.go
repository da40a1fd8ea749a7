package explorer

import "strings"

// TxPredicate selects transactions of interest within a scan window.
type TxPredicate func(TransactionRecord) bool

// InvolvesAddress matches transactions whose sender or recipient equals the
// given address. Addresses are compared case-insensitively, so activity for
// "0xAbC…" and "0xabc…" is identical.
func InvolvesAddress(address string) TxPredicate {
	addr := strings.ToLower(address)
	return func(tx TransactionRecord) bool {
		if strings.ToLower(tx.From) == addr {
			return true
		}
		return tx.To != "" && strings.ToLower(tx.To) == addr
	}
}

// IsContractCreation matches contract-creation transactions, identified by an
// absent recipient.
func IsContractCreation() TxPredicate {
	return func(tx TransactionRecord) bool {
		return tx.IsContractCreation()
	}
}

// MatchAll matches every transaction. It backs the recent-transactions view.
func MatchAll() TxPredicate {
	return func(TransactionRecord) bool {
		return true
	}
}

// filterTransactions applies pred to every transaction in the given blocks.
// Block order and in-block position are preserved, which keeps downstream
// tie-breaking deterministic.
func filterTransactions(blocks []BlockSummary, pred TxPredicate) []TransactionRecord {
	var matched []TransactionRecord
	for _, block := range blocks {
		for _, tx := range block.Transactions {
			if pred(tx) {
				matched = append(matched, tx)
			}
		}
	}
	return matched
}
