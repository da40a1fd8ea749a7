package explorer

import "context"

// TxStatus describes the execution outcome of a transaction as far as the
// scan engine could determine it.
type TxStatus string

const (
	// TxStatusSuccess means the transaction's receipt was resolved and
	// reports successful execution.
	TxStatusSuccess TxStatus = "success"

	// TxStatusFailed means the transaction's receipt was resolved and
	// reports a reverted or otherwise failed execution.
	TxStatusFailed TxStatus = "failed"

	// TxStatusAssumed means the receipt could not be resolved. The
	// transaction is treated as successful with zero gas used, and any
	// result containing it is flagged partial so callers can distinguish
	// confirmed from assumed status.
	TxStatusAssumed TxStatus = "assumed"
)

// BlockSummary represents a single block as observed from the ledger node.
// A summary is immutable once fetched for a given height; if the node later
// returns a different hash at that height (reorg), the latest observation
// wins with no historical reconciliation.
type BlockSummary struct {
	Height     uint64 `json:"height"`
	Hash       string `json:"hash"`
	ParentHash string `json:"parentHash"`
	Timestamp  uint64 `json:"timestamp"` // seconds since epoch
	Producer   string `json:"producer"`  // miner/validator address
	Difficulty string `json:"difficulty,omitempty"`
	GasUsed    uint64 `json:"gasUsed"`
	GasLimit   uint64 `json:"gasLimit"`
	Size       uint64 `json:"size"`

	// TxCount is always populated, even when Transactions is empty because
	// the block was fetched without its transaction bodies.
	TxCount      int                 `json:"txCount"`
	Transactions []TransactionRecord `json:"transactions,omitempty"`
}

// TransactionRecord represents a transaction and, once its receipt has been
// resolved, the receipt-derived fields. Value and GasPrice are base-10
// strings: ledger quantities routinely exceed 64 bits and are normalized
// exactly once, at the client boundary, never re-parsed downstream.
type TransactionRecord struct {
	Hash        string `json:"hash"`
	BlockHeight uint64 `json:"blockHeight"`
	BlockHash   string `json:"blockHash"`
	Position    uint64 `json:"position"` // index within the block
	From        string `json:"from"`
	To          string `json:"to,omitempty"` // empty means contract creation
	Value       string `json:"value"`        // base-10 native units
	GasLimit    uint64 `json:"gasLimit"`
	GasPrice    string `json:"gasPrice"` // base-10 native units

	// Receipt-derived fields. Meaningful only when Status is not empty.
	Status          TxStatus    `json:"status,omitempty"`
	GasUsed         uint64      `json:"gasUsed,omitempty"`
	ContractAddress string      `json:"contractAddress,omitempty"`
	Logs            []LogRecord `json:"logs,omitempty"`
}

// IsContractCreation reports whether the transaction deploys a contract,
// which the ledger encodes as an absent recipient.
func (t TransactionRecord) IsContractCreation() bool {
	return t.To == ""
}

// LogRecord is a single log entry emitted during transaction execution.
type LogRecord struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// Receipt holds the post-execution record of a transaction.
type Receipt struct {
	TxHash          string      `json:"txHash"`
	Success         bool        `json:"success"`
	GasUsed         uint64      `json:"gasUsed"`
	ContractAddress string      `json:"contractAddress,omitempty"`
	Logs            []LogRecord `json:"logs,omitempty"`
}

// AddressProfile describes an address at query time. It is recomputed fresh
// on every lookup and never cached beyond the scan cache TTL.
type AddressProfile struct {
	Address    string `json:"address"`
	Balance    string `json:"balance"` // base-10 native units
	IsContract bool   `json:"isContract"`
	Code       string `json:"code,omitempty"` // hex-encoded, contracts only
}

// ContractRecord describes a deployed contract discovered in a scan window.
// Records are unique by address; overlapping windows are deduplicated,
// keeping the occurrence with the lowest deployment height.
type ContractRecord struct {
	Address   string `json:"address"`
	TxHash    string `json:"txHash"` // deployment transaction
	Height    uint64 `json:"height"`
	Timestamp uint64 `json:"timestamp"`
	Creator   string `json:"creator"`
	CodeSize  int    `json:"codeSize"` // bytes; zero when the code fetch failed
}

// NetworkStats is the composite result of the lightweight network probe.
// All fields are required: if any underlying query fails, the probe fails as
// a whole.
type NetworkStats struct {
	HeadHeight uint64 `json:"headHeight"`
	GasPrice   string `json:"gasPrice"` // base-10 native units
	PeerCount  uint64 `json:"peerCount"`
	Difficulty string `json:"difficulty"`
}

// LedgerClient is the point-query contract the scan engine requires from the
// remote ledger node. The node offers no secondary indices, so everything the
// engine surfaces beyond these calls is reconstructed at query time.
//
// Implementations return ErrNotFound (possibly wrapped) when a well-formed
// identifier has no matching record. Any other error is treated as an
// upstream failure and classified by the engine.
type LedgerClient interface {
	// HeadHeight returns the height of the most recent block known to the node.
	HeadHeight(ctx context.Context) (uint64, error)

	// BlockByHeight returns the block at the given height. When includeTxs is
	// true the block carries full transaction records; otherwise only the
	// transaction count is populated.
	BlockByHeight(ctx context.Context, height uint64, includeTxs bool) (*BlockSummary, error)

	// BlockByHash returns the block with the given hash, including full
	// transaction records.
	BlockByHash(ctx context.Context, hash string) (*BlockSummary, error)

	// TransactionByHash returns the transaction with the given hash.
	TransactionByHash(ctx context.Context, hash string) (*TransactionRecord, error)

	// ReceiptByHash returns the receipt for the given transaction hash.
	ReceiptByHash(ctx context.Context, hash string) (*Receipt, error)

	// Balance returns the current balance of the address as a base-10 string
	// in the ledger's native unit.
	Balance(ctx context.Context, address string) (string, error)

	// Code returns the code deployed at the address, or an empty slice for
	// externally owned accounts.
	Code(ctx context.Context, address string) ([]byte, error)

	// GasPrice returns the current price of inclusion as a base-10 string.
	GasPrice(ctx context.Context) (string, error)

	// PeerCount returns the number of peers the node is connected to.
	PeerCount(ctx context.Context) (uint64, error)
}
