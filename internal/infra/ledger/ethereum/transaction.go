package ethereum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chainscope/chainscope/internal/explorer"
	"github.com/chainscope/chainscope/internal/pkg/types"
)

type (
	// LogResponse represents a single log entry inside a transaction receipt.
	LogResponse struct {
		Address string   `json:"address"`
		Topics  []string `json:"topics"`
		Data    string   `json:"data"`
	}

	// ReceiptResponse represents a transaction receipt returned by the
	// Ethereum JSON-RPC API.
	ReceiptResponse struct {
		TransactionHash string        `json:"transactionHash"`
		Status          types.Hex     `json:"status"`
		GasUsed         types.Hex     `json:"gasUsed"`
		ContractAddress string        `json:"contractAddress"`
		Logs            []LogResponse `json:"logs"`
	}
)

// toReceipt converts a ReceiptResponse into the explorer's receipt shape.
// A status of 0x1 means successful execution.
func (r ReceiptResponse) toReceipt() explorer.Receipt {
	receipt := explorer.Receipt{
		TxHash:          r.TransactionHash,
		Success:         r.Status.Uint64() == 1,
		GasUsed:         r.GasUsed.Uint64(),
		ContractAddress: r.ContractAddress,
	}

	for _, log := range r.Logs {
		receipt.Logs = append(receipt.Logs, explorer.LogRecord{
			Address: log.Address,
			Topics:  log.Topics,
			Data:    log.Data,
		})
	}

	return receipt
}

// TransactionByHash implements the explorer.LedgerClient interface.
func (c *client) TransactionByHash(ctx context.Context, hash string) (*explorer.TransactionRecord, error) {
	data, err := c.fetch(ctx, "eth_getTransactionByHash", hash)
	if err != nil {
		return nil, err
	}

	var response TransactionResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("decoding transaction: %w", err)
	}

	record, err := response.toTransactionRecord()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ReceiptByHash implements the explorer.LedgerClient interface.
func (c *client) ReceiptByHash(ctx context.Context, hash string) (*explorer.Receipt, error) {
	data, err := c.fetch(ctx, "eth_getTransactionReceipt", hash)
	if err != nil {
		return nil, err
	}

	var response ReceiptResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}

	receipt := response.toReceipt()
	return &receipt, nil
}
