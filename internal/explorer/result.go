package explorer

// FetchFailure records a single remote fetch that failed inside a windowed
// scan after its bounded retry was exhausted. Exactly one of Height, TxHash,
// or Address identifies the item, depending on what was being fetched.
// Failures are absorbed locally: they mark the surrounding result partial
// instead of aborting the scan.
type FetchFailure struct {
	Height  uint64
	TxHash  string
	Address string
	Err     error
}

// ScanResult is the outcome of one scan query. Exactly one of Transactions,
// Blocks, or Contracts is populated, depending on the query kind.
//
// A partial result is a success: it means the scan produced usable data while
// one or more sub-fetches failed or receipts could not be confirmed. Callers
// can therefore always distinguish "no activity" (empty, non-partial) from
// degraded service.
type ScanResult struct {
	Transactions []TransactionRecord `json:"transactions,omitempty"`
	Blocks       []BlockSummary      `json:"blocks,omitempty"`
	Contracts    []ContractRecord    `json:"contracts,omitempty"`

	// Partial is true when at least one block, receipt, or code fetch failed
	// and the result was assembled from the remaining data.
	Partial bool `json:"partial"`

	// Failures counts the absorbed sub-fetch failures behind Partial.
	Failures int `json:"failures,omitempty"`

	// EstimatedTotal is the estimated number of records in the full ledger
	// for paged views. For block pages it is exact (head height + 1, since
	// every height has exactly one block). For transaction listings it is an
	// advisory multiplier that can diverge arbitrarily from reality, which
	// EstimateApproximate signals.
	EstimatedTotal      uint64 `json:"estimatedTotal,omitempty"`
	EstimatedPages      uint64 `json:"estimatedPages,omitempty"`
	EstimateApproximate bool   `json:"estimateApproximate,omitempty"`
}
