package ethereum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chainscope/chainscope/internal/explorer"
	"github.com/chainscope/chainscope/internal/pkg/types"
)

type (
	// TransactionResponse represents a raw transaction object returned by the
	// Ethereum JSON-RPC API. Only the fields the explorer surfaces are mapped;
	// the node may send more.
	TransactionResponse struct {
		Hash             string    `json:"hash"`
		BlockHash        string    `json:"blockHash"`
		BlockNumber      types.Hex `json:"blockNumber"`
		TransactionIndex types.Hex `json:"transactionIndex"`
		From             string    `json:"from"`
		To               string    `json:"to"`
		Value            string    `json:"value"`
		Gas              types.Hex `json:"gas"`
		GasPrice         string    `json:"gasPrice"`
	}

	// BlockResponse represents the structure of a block returned by the
	// Ethereum JSON-RPC API. Transactions stay raw because the node returns
	// either full objects or bare hash strings depending on the request.
	BlockResponse struct {
		Number       types.Hex         `json:"number"`
		Hash         string            `json:"hash"`
		ParentHash   string            `json:"parentHash"`
		Timestamp    types.Hex         `json:"timestamp"`
		Miner        string            `json:"miner"`
		Difficulty   string            `json:"difficulty"`
		GasUsed      types.Hex         `json:"gasUsed"`
		GasLimit     types.Hex         `json:"gasLimit"`
		Size         types.Hex         `json:"size"`
		Transactions []json.RawMessage `json:"transactions"`
	}
)

// toTransactionRecord converts a TransactionResponse into the explorer's
// record shape, normalizing value and gas price to base-10 exactly once.
func (t TransactionResponse) toTransactionRecord() (explorer.TransactionRecord, error) {
	value, err := types.HexToDecimal(t.Value)
	if err != nil {
		return explorer.TransactionRecord{}, fmt.Errorf("transaction %s value: %w", t.Hash, err)
	}

	gasPrice, err := types.HexToDecimal(t.GasPrice)
	if err != nil {
		return explorer.TransactionRecord{}, fmt.Errorf("transaction %s gas price: %w", t.Hash, err)
	}

	return explorer.TransactionRecord{
		Hash:        t.Hash,
		BlockHeight: t.BlockNumber.Uint64(),
		BlockHash:   t.BlockHash,
		Position:    t.TransactionIndex.Uint64(),
		From:        t.From,
		To:          t.To,
		Value:       value,
		GasLimit:    t.Gas.Uint64(),
		GasPrice:    gasPrice,
	}, nil
}

// toBlockSummary converts a BlockResponse into the explorer's block shape.
// TxCount is always populated from the raw transaction list; full records are
// decoded only when the node sent transaction objects rather than hashes.
func (b BlockResponse) toBlockSummary() (explorer.BlockSummary, error) {
	summary := explorer.BlockSummary{
		Height:     b.Number.Uint64(),
		Hash:       b.Hash,
		ParentHash: b.ParentHash,
		Timestamp:  b.Timestamp.Uint64(),
		Producer:   b.Miner,
		Difficulty: decimalOrRaw(b.Difficulty),
		GasUsed:    b.GasUsed.Uint64(),
		GasLimit:   b.GasLimit.Uint64(),
		Size:       b.Size.Uint64(),
		TxCount:    len(b.Transactions),
	}

	for _, raw := range b.Transactions {
		if len(raw) > 0 && raw[0] == '"' {
			// Hash-only listing: the count above is all there is to map.
			return summary, nil
		}

		var tx TransactionResponse
		if err := json.Unmarshal(raw, &tx); err != nil {
			return explorer.BlockSummary{}, fmt.Errorf("block %s transaction: %w", b.Hash, err)
		}

		record, err := tx.toTransactionRecord()
		if err != nil {
			return explorer.BlockSummary{}, err
		}
		summary.Transactions = append(summary.Transactions, record)
	}

	return summary, nil
}

// decimalOrRaw renders a hex quantity in base 10, falling back to the raw
// string when the node sends something non-standard for the field.
func decimalOrRaw(s string) string {
	decimal, err := types.HexToDecimal(s)
	if err != nil {
		return s
	}
	return decimal
}

// HeadHeight implements the explorer.LedgerClient interface.
func (c *client) HeadHeight(ctx context.Context) (uint64, error) {
	data, err := c.fetch(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var height types.Hex
	if err := json.Unmarshal(data, &height); err != nil {
		return 0, fmt.Errorf("decoding head height: %w", err)
	}
	return height.Uint64(), nil
}

// BlockByHeight implements the explorer.LedgerClient interface.
func (c *client) BlockByHeight(ctx context.Context, height uint64, includeTxs bool) (*explorer.BlockSummary, error) {
	data, err := c.fetch(ctx, "eth_getBlockByNumber", types.HexFromUint64(height), includeTxs)
	if err != nil {
		return nil, err
	}
	return decodeBlock(data)
}

// BlockByHash implements the explorer.LedgerClient interface.
func (c *client) BlockByHash(ctx context.Context, hash string) (*explorer.BlockSummary, error) {
	data, err := c.fetch(ctx, "eth_getBlockByHash", hash, true)
	if err != nil {
		return nil, err
	}
	return decodeBlock(data)
}

func decodeBlock(data json.RawMessage) (*explorer.BlockSummary, error) {
	var response BlockResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("decoding block: %w", err)
	}

	summary, err := response.toBlockSummary()
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
