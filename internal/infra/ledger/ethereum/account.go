package ethereum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chainscope/chainscope/internal/pkg/types"
)

// latestBlockTag asks the node to evaluate state queries against its most
// recent block.
const latestBlockTag = "latest"

// fetchQuantity issues the call and decodes a single hexadecimal quantity
// from the result.
func (c *client) fetchQuantity(ctx context.Context, method string, params ...any) (string, error) {
	data, err := c.fetch(ctx, method, params...)
	if err != nil {
		return "", err
	}

	var quantity string
	if err := json.Unmarshal(data, &quantity); err != nil {
		return "", fmt.Errorf("decoding %s result: %w", method, err)
	}
	return quantity, nil
}

// Balance implements the explorer.LedgerClient interface. The hex quantity
// from the node is normalized to a base-10 string here, never downstream.
func (c *client) Balance(ctx context.Context, address string) (string, error) {
	quantity, err := c.fetchQuantity(ctx, "eth_getBalance", address, latestBlockTag)
	if err != nil {
		return "", err
	}
	return types.HexToDecimal(quantity)
}

// Code implements the explorer.LedgerClient interface. Externally owned
// accounts yield "0x" from the node, which decodes to an empty slice.
func (c *client) Code(ctx context.Context, address string) ([]byte, error) {
	data, err := c.conn.Fetch(ctx, "eth_getCode", address, latestBlockTag)
	if err != nil {
		return nil, err
	}
	if isNullResult(data) {
		return nil, nil
	}

	var payload string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding eth_getCode result: %w", err)
	}
	return types.HexToBytes(payload)
}

// GasPrice implements the explorer.LedgerClient interface.
func (c *client) GasPrice(ctx context.Context) (string, error) {
	quantity, err := c.fetchQuantity(ctx, "eth_gasPrice")
	if err != nil {
		return "", err
	}
	return types.HexToDecimal(quantity)
}

// PeerCount implements the explorer.LedgerClient interface.
func (c *client) PeerCount(ctx context.Context) (uint64, error) {
	data, err := c.fetch(ctx, "net_peerCount")
	if err != nil {
		return 0, err
	}

	var count types.Hex
	if err := json.Unmarshal(data, &count); err != nil {
		return 0, fmt.Errorf("decoding peer count: %w", err)
	}
	return count.Uint64(), nil
}
