package explorer

import (
	"context"

	"github.com/chainscope/chainscope/internal/pkg/logger"
)

// ScanAddressActivity implements the Service interface.
func (s *service) ScanAddressActivity(ctx context.Context, address string, limit int) (ScanResult, error) {
	if err := validateAddress(address); err != nil {
		return ScanResult{}, err
	}
	limit = clampLimit(limit)

	query := ScanQuery{Kind: QueryAddressActivity, Address: address, Limit: limit}
	return s.cache.GetOrCompute(ctx, query.Fingerprint(), s.cacheTTL, func(ctx context.Context) (ScanResult, error) {
		return s.scanTransactions(ctx, InvolvesAddress(address), limit, false)
	})
}

// ScanRecentTransactions implements the Service interface.
func (s *service) ScanRecentTransactions(ctx context.Context, limit int) (ScanResult, error) {
	limit = clampLimit(limit)

	query := ScanQuery{Kind: QueryRecentTransactions, Limit: limit}
	return s.cache.GetOrCompute(ctx, query.Fingerprint(), s.cacheTTL, func(ctx context.Context) (ScanResult, error) {
		return s.scanTransactions(ctx, MatchAll(), limit, true)
	})
}

// scanTransactions is the windowed scan shared by the transaction views:
// fetch a window of blocks, filter candidates, widen adaptively while the
// page is not filled, then resolve receipts for the page being returned.
//
// The widening loop stops when enough candidates were found, when the scan
// has covered the configured maximum of heights, when the genesis block is
// reached, or when the caller cancels. Cancellation stops issuing new
// fetches and returns whatever accumulated, flagged partial.
func (s *service) scanTransactions(ctx context.Context, pred TxPredicate, limit int, estimateTotal bool) (ScanResult, error) {
	head, err := s.headHeight(ctx)
	if err != nil {
		return ScanResult{}, classifyUpstream(err)
	}

	var (
		candidates []TransactionRecord
		failures   []FetchFailure
		canceled   bool

		start   = head
		scanned = 0
	)

	for scanned < s.maxWindow {
		window := min(s.windowSize, s.maxWindow-scanned)
		if avail := start + 1; avail < uint64(window) {
			window = int(avail)
		}

		blocks, fetchFailures := s.fetchWindow(ctx, start, window, true)
		failures = append(failures, fetchFailures...)
		candidates = append(candidates, filterTransactions(blocks, pred)...)
		scanned += window

		if ctx.Err() != nil {
			canceled = true
			break
		}
		if len(candidates) >= limit {
			break
		}
		if start+1 <= uint64(window) {
			break // reached genesis
		}
		start -= uint64(window)
	}

	sortTransactionsNewestFirst(candidates)
	page := truncate(candidates, limit)

	if !canceled {
		receipts, receiptFailures := s.resolveReceipts(ctx, page)
		failures = append(failures, receiptFailures...)
		applyReceipts(page, receipts)
	} else {
		applyReceipts(page, nil)
	}

	if len(failures) > 0 {
		logger.Warn(ctx, "windowed scan degraded to partial result",
			"head", head,
			"scanned", scanned,
			"failures", len(failures),
			"matched", len(page),
		)
	}

	result := ScanResult{
		Transactions: page,
		Partial:      len(failures) > 0 || canceled,
		Failures:     len(failures),
	}
	if estimateTotal {
		result.EstimatedTotal = estimatedTransactionTotal(head)
		result.EstimateApproximate = true
	}
	return result, nil
}

// ScanBlockPage implements the Service interface. Pages are 1-based and run
// newest first: with head height 100 and page size 10, page 1 covers heights
// 100 down to 91. The block total is exact (every height has exactly one
// block), so EstimateApproximate stays false.
func (s *service) ScanBlockPage(ctx context.Context, page, pageSize uint64) (ScanResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultLimit
	}
	if pageSize > maxLimit {
		pageSize = maxLimit
	}

	query := ScanQuery{Kind: QueryBlockPage, Page: page, PageSize: pageSize}
	return s.cache.GetOrCompute(ctx, query.Fingerprint(), s.cacheTTL, func(ctx context.Context) (ScanResult, error) {
		head, err := s.headHeight(ctx)
		if err != nil {
			return ScanResult{}, classifyUpstream(err)
		}

		result := ScanResult{
			EstimatedTotal:      head + 1,
			EstimatedPages:      pageCount(head+1, pageSize),
			EstimateApproximate: false,
		}

		offset := (page - 1) * pageSize
		if offset > head {
			// Past the genesis block: an empty, non-partial page.
			result.Blocks = []BlockSummary{}
			return result, nil
		}

		blocks, failures := s.fetchWindow(ctx, head-offset, int(pageSize), false)
		result.Blocks = blocks
		result.Partial = len(failures) > 0
		result.Failures = len(failures)
		return result, nil
	})
}

// ScanContracts implements the Service interface. Contract discovery needs
// receipts (the deployed address only exists there), so every candidate's
// receipt is resolved before aggregation; candidates whose receipt cannot be
// resolved are dropped and counted as failures.
func (s *service) ScanContracts(ctx context.Context, limit int) (ScanResult, error) {
	limit = clampLimit(limit)

	query := ScanQuery{Kind: QueryContractList, Limit: limit}
	return s.cache.GetOrCompute(ctx, query.Fingerprint(), s.cacheTTL, func(ctx context.Context) (ScanResult, error) {
		return s.scanContracts(ctx, limit)
	})
}

func (s *service) scanContracts(ctx context.Context, limit int) (ScanResult, error) {
	head, err := s.headHeight(ctx)
	if err != nil {
		return ScanResult{}, classifyUpstream(err)
	}

	var (
		candidates []TransactionRecord
		failures   []FetchFailure
		blockTimes = make(map[uint64]uint64)

		start   = head
		scanned = 0
	)

	for scanned < s.maxWindow {
		window := min(s.windowSize, s.maxWindow-scanned)
		if avail := start + 1; avail < uint64(window) {
			window = int(avail)
		}

		blocks, fetchFailures := s.fetchWindow(ctx, start, window, true)
		failures = append(failures, fetchFailures...)
		for _, block := range blocks {
			blockTimes[block.Height] = block.Timestamp
		}
		candidates = append(candidates, filterTransactions(blocks, IsContractCreation())...)
		scanned += window

		if ctx.Err() != nil {
			break
		}
		if len(candidates) >= limit {
			break
		}
		if start+1 <= uint64(window) {
			break
		}
		start -= uint64(window)
	}

	receipts, receiptFailures := s.resolveReceipts(ctx, candidates)
	failures = append(failures, receiptFailures...)

	contracts := make([]ContractRecord, 0, len(candidates))
	for _, tx := range candidates {
		receipt, ok := receipts[tx.Hash]
		if !ok || receipt.ContractAddress == "" {
			continue
		}
		contracts = append(contracts, ContractRecord{
			Address:   receipt.ContractAddress,
			TxHash:    tx.Hash,
			Height:    tx.BlockHeight,
			Timestamp: blockTimes[tx.BlockHeight],
			Creator:   tx.From,
		})
	}

	contracts = dedupeContracts(contracts)
	sortContractsNewestFirst(contracts)
	contracts = truncate(contracts, limit)

	codeSizes, codeFailures := s.fetchCodeSizes(ctx, contracts)
	failures = append(failures, codeFailures...)
	for i := range contracts {
		contracts[i].CodeSize = codeSizes[contracts[i].Address]
	}

	if len(failures) > 0 {
		logger.Warn(ctx, "contract scan degraded to partial result",
			"head", head,
			"scanned", scanned,
			"failures", len(failures),
			"contracts", len(contracts),
		)
	}

	return ScanResult{
		Contracts: contracts,
		Partial:   len(failures) > 0,
		Failures:  len(failures),
	}, nil
}
