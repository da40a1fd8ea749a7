package explorer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chainscope/chainscope/internal/pkg/types"
)

// errNodeDown simulates an unreachable ledger node for individual queries.
var errNodeDown = errors.New("node down")

// fakeLedger is an in-memory LedgerClient test double. It serves a
// deterministic synthetic chain and can be told to fail individual heights,
// receipts, or point queries. All methods count their invocations so tests
// can assert that cached or rejected queries issue no remote calls.
type fakeLedger struct {
	mu sync.Mutex

	head      uint64
	blocks    map[uint64]BlockSummary
	byHash    map[string]BlockSummary
	txs       map[string]TransactionRecord
	receipts  map[string]Receipt
	balances  map[string]string
	codes     map[string][]byte
	gasPrice  string
	peerCount uint64

	failHead     bool
	failGasPrice bool
	failPeers    bool
	failHeights  types.Set[uint64]
	failReceipts types.Set[string]
	failCode     types.Set[string]

	calls map[string]int
}

var _ LedgerClient = (*fakeLedger)(nil)

// blockHash renders a deterministic, format-valid hash for a height.
func blockHash(height uint64) string {
	return fmt.Sprintf("0x%064x", height+1_000_000)
}

// txHash renders a deterministic, format-valid transaction hash.
func txHash(height, position uint64) string {
	return fmt.Sprintf("0x%064x", height*1_000+position)
}

func addressFor(n uint64) string {
	return fmt.Sprintf("0x%040x", n)
}

// newFakeLedger builds a chain from genesis to head with txPerBlock
// transactions in every block. Each transaction gets a resolvable receipt.
func newFakeLedger(head uint64, txPerBlock int) *fakeLedger {
	f := &fakeLedger{
		head:         head,
		blocks:       make(map[uint64]BlockSummary),
		byHash:       make(map[string]BlockSummary),
		txs:          make(map[string]TransactionRecord),
		receipts:     make(map[string]Receipt),
		balances:     make(map[string]string),
		codes:        make(map[string][]byte),
		gasPrice:     "1000000000",
		peerCount:    8,
		failHeights:  types.NewSet[uint64](),
		failReceipts: types.NewSet[string](),
		failCode:     types.NewSet[string](),
		calls:        make(map[string]int),
	}

	for h := uint64(0); h <= head; h++ {
		block := BlockSummary{
			Height:     h,
			Hash:       blockHash(h),
			ParentHash: blockHash(h - 1),
			Timestamp:  1_700_000_000 + h*12,
			Producer:   addressFor(h % 3),
			Difficulty: "1234567",
			GasUsed:    21_000 * uint64(txPerBlock),
			GasLimit:   30_000_000,
			Size:       1024,
			TxCount:    txPerBlock,
		}

		for p := uint64(0); p < uint64(txPerBlock); p++ {
			tx := TransactionRecord{
				Hash:        txHash(h, p),
				BlockHeight: h,
				BlockHash:   block.Hash,
				Position:    p,
				From:        addressFor(h*10 + p),
				To:          addressFor(h*10 + p + 1),
				Value:       "1000000000000000000",
				GasLimit:    21_000,
				GasPrice:    "1000000000",
			}
			block.Transactions = append(block.Transactions, tx)
			f.txs[tx.Hash] = tx
			f.receipts[tx.Hash] = Receipt{
				TxHash:  tx.Hash,
				Success: true,
				GasUsed: 21_000,
			}
		}

		f.blocks[h] = block
		f.byHash[block.Hash] = block
	}

	return f
}

// setContractCreation rewrites the transaction at (height, position) into a
// contract-creation transaction deploying at the given address.
func (f *fakeLedger) setContractCreation(height, position uint64, contractAddr string, codeSize int) {
	block := f.blocks[height]
	tx := block.Transactions[position]
	tx.To = ""
	block.Transactions[position] = tx
	f.blocks[height] = block
	f.byHash[block.Hash] = block
	f.txs[tx.Hash] = tx
	f.receipts[tx.Hash] = Receipt{
		TxHash:          tx.Hash,
		Success:         true,
		GasUsed:         500_000,
		ContractAddress: contractAddr,
	}

	code := make([]byte, codeSize)
	for i := range code {
		code[i] = byte(i)
	}
	f.codes[contractAddr] = code
}

func (f *fakeLedger) count(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeLedger) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeLedger) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeLedger) HeadHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.count("HeadHeight")
	if f.failHead {
		return 0, errNodeDown
	}
	return f.head, nil
}

func (f *fakeLedger) BlockByHeight(ctx context.Context, height uint64, includeTxs bool) (*BlockSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.count("BlockByHeight")
	if f.failHeights.Has(height) {
		return nil, errNodeDown
	}

	block, ok := f.blocks[height]
	if !ok {
		return nil, ErrNotFound
	}
	if !includeTxs {
		block.Transactions = nil
	}
	return &block, nil
}

func (f *fakeLedger) BlockByHash(ctx context.Context, hash string) (*BlockSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.count("BlockByHash")
	block, ok := f.byHash[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return &block, nil
}

func (f *fakeLedger) TransactionByHash(ctx context.Context, hash string) (*TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.count("TransactionByHash")
	tx, ok := f.txs[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return &tx, nil
}

func (f *fakeLedger) ReceiptByHash(ctx context.Context, hash string) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.count("ReceiptByHash")
	if f.failReceipts.Has(hash) {
		return nil, errNodeDown
	}

	receipt, ok := f.receipts[hash]
	if !ok {
		return nil, ErrNotFound
	}
	return &receipt, nil
}

func (f *fakeLedger) Balance(ctx context.Context, address string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.count("Balance")
	if balance, ok := f.balances[address]; ok {
		return balance, nil
	}
	return "0", nil
}

func (f *fakeLedger) Code(ctx context.Context, address string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.count("Code")
	if f.failCode.Has(address) {
		return nil, errNodeDown
	}
	return f.codes[address], nil
}

func (f *fakeLedger) GasPrice(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.count("GasPrice")
	if f.failGasPrice {
		return "", errNodeDown
	}
	return f.gasPrice, nil
}

func (f *fakeLedger) PeerCount(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.count("PeerCount")
	if f.failPeers {
		return 0, errNodeDown
	}
	return f.peerCount, nil
}
