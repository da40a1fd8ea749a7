// Package explorer implements the on-demand ledger scan engine behind a
// read-only dashboard. The remote ledger node is append-only and answers
// point queries only, so the views a dashboard needs (activity by address,
// recent transactions, deployed contracts) have no index to read from.
// This package reconstructs them at query time: it fetches a bounded window
// of recent blocks through a global concurrency limiter, resolves receipts
// for the candidate transactions, filters and aggregates the matches, and
// returns a best-effort, boundedly-stale page of results that degrades
// gracefully when individual fetches fail.
package explorer

import (
	"context"
	"time"

	"github.com/chainscope/chainscope/internal/pkg/resilience/retry"
)

const (
	// defaultWindowSize is how many heights one scan step covers before the
	// engine decides whether it has enough candidates.
	defaultWindowSize = 10

	// maxWindowHardCap bounds the total heights one scan may cover, however
	// aggressively it widens. It exists to bound worst-case latency.
	maxWindowHardCap = 100

	// defaultLimit applies when a caller passes a non-positive limit.
	defaultLimit = 25

	// maxLimit caps a single result page.
	maxLimit = 100

	// defaultCacheTTL approximates one block interval, so a polling caller
	// does not re-trigger a full window scan faster than the ledger grows.
	defaultCacheTTL = 12 * time.Second

	// defaultCallTimeout is the per-remote-call budget.
	defaultCallTimeout = 5 * time.Second

	// defaultConcurrency is the default limiter size shared by all scans.
	defaultConcurrency = 16
)

// Service is the public query surface the explorer core exposes to its
// callers (the presentation layer lives elsewhere). Windowed scans return a
// ScanResult that may be flagged partial; detail lookups return typed
// failures. Callers always receive a complete result, a partial result with
// an explicit incompleteness marker, or an error, never a silently
// truncated result indistinguishable from "no activity".
type Service interface {
	// ScanAddressActivity returns transactions in the recent window whose
	// sender or recipient equals address (case-insensitive). Fails with
	// ErrInvalidInput if address is malformed.
	ScanAddressActivity(ctx context.Context, address string, limit int) (ScanResult, error)

	// ScanRecentTransactions returns the most recent transactions on the
	// ledger, newest first.
	ScanRecentTransactions(ctx context.Context, limit int) (ScanResult, error)

	// ScanBlockPage returns page (1-based) of the descending block listing.
	ScanBlockPage(ctx context.Context, page, pageSize uint64) (ScanResult, error)

	// ScanContracts returns contracts deployed within the recent window,
	// deduplicated by address.
	ScanContracts(ctx context.Context, limit int) (ScanResult, error)

	// NetworkStats probes head height, gas price, peer count, and difficulty
	// concurrently. Unlike the windowed scans it fails as a whole if any
	// sub-query fails.
	NetworkStats(ctx context.Context) (NetworkStats, error)

	// BlockDetail resolves a block by decimal height or "0x…" hash.
	BlockDetail(ctx context.Context, ref string) (*BlockSummary, error)

	// TransactionDetail resolves a transaction by hash, annotated with its
	// receipt when resolvable.
	TransactionDetail(ctx context.Context, hash string) (*TransactionRecord, error)

	// AddressDetail returns the live profile (balance, contract flag, code)
	// of an address.
	AddressDetail(ctx context.Context, address string) (*AddressProfile, error)
}

// service implements Service. The limiter and cache are the only state
// shared across concurrent queries; everything else is per-invocation.
type service struct {
	client  LedgerClient
	cache   ScanCache
	limiter *Limiter
	retry   retry.Retry

	windowSize  int
	maxWindow   int
	cacheTTL    time.Duration
	callTimeout time.Duration
}

// Compile-time assertion that service implements Service.
var _ Service = (*service)(nil)

// config holds the tunables applied by functional options.
type config struct {
	cache       ScanCache
	retry       retry.Retry
	concurrency int64
	windowSize  int
	maxWindow   int
	cacheTTL    time.Duration
	callTimeout time.Duration
}

// Option configures the explorer service.
type Option func(*config)

// New creates an explorer service around the given ledger client. The client
// handle is explicit, with no package-level singleton, so tests can
// pass doubles and one process can serve several node configurations at once.
func New(client LedgerClient, opts ...Option) *service {
	cfg := config{
		concurrency: defaultConcurrency,
		windowSize:  defaultWindowSize,
		maxWindow:   maxWindowHardCap,
		cacheTTL:    defaultCacheTTL,
		callTimeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.cache == nil {
		cfg.cache = NewMemoryScanCache()
	}
	if cfg.retry == nil {
		cfg.retry = retry.New(retry.WithRetryIf(isRetryable))
	}
	if cfg.windowSize < 1 {
		cfg.windowSize = defaultWindowSize
	}
	if cfg.maxWindow < cfg.windowSize {
		cfg.maxWindow = cfg.windowSize
	}
	if cfg.maxWindow > maxWindowHardCap {
		cfg.maxWindow = maxWindowHardCap
	}

	return &service{
		client:      client,
		cache:       cfg.cache,
		limiter:     NewLimiter(cfg.concurrency),
		retry:       cfg.retry,
		windowSize:  cfg.windowSize,
		maxWindow:   cfg.maxWindow,
		cacheTTL:    cfg.cacheTTL,
		callTimeout: cfg.callTimeout,
	}
}

// WithScanCache replaces the default in-memory cache, e.g. with the Redis
// adapter or a nop cache.
func WithScanCache(c ScanCache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// WithoutScanCache disables result memoization entirely.
func WithoutScanCache() Option {
	return func(cfg *config) {
		cfg.cache = nopScanCache{}
	}
}

// WithRetry replaces the per-item retry policy. The default performs one
// retry with a short backoff and never retries definitive answers such as
// ErrNotFound.
func WithRetry(r retry.Retry) Option {
	return func(cfg *config) {
		cfg.retry = r
	}
}

// WithConcurrency sets the global limiter size: the maximum number of
// in-flight remote calls across all concurrent scans. Default: 16.
func WithConcurrency(n int64) Option {
	return func(cfg *config) {
		cfg.concurrency = n
	}
}

// WithWindowSize sets how many heights a single scan step covers before the
// engine checks whether enough candidates were found. Default: 10.
func WithWindowSize(n int) Option {
	return func(cfg *config) {
		cfg.windowSize = n
	}
}

// WithMaxWindow caps the total heights one scan may cover across all widening
// steps. Values above the hard cap of 100 are clamped. Default: 100.
func WithMaxWindow(n int) Option {
	return func(cfg *config) {
		cfg.maxWindow = n
	}
}

// WithCacheTTL sets how long aggregated results are served from cache.
// Default: 12 seconds, on the order of one block interval.
func WithCacheTTL(d time.Duration) Option {
	return func(cfg *config) {
		cfg.cacheTTL = d
	}
}

// WithCallTimeout sets the budget for each individual remote call.
// Default: 5 seconds.
func WithCallTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.callTimeout = d
	}
}

// clampLimit normalizes a caller-supplied page limit.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
