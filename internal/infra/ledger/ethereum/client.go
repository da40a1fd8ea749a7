// Package ethereum provides an implementation of the explorer.LedgerClient
// interface for Ethereum-compatible nodes using a JSON-RPC client.
package ethereum

import (
	"context"
	"encoding/json"

	"github.com/chainscope/chainscope/internal/explorer"
	"github.com/chainscope/chainscope/internal/pkg/transport/jsonrpc"
)

// client implements the explorer.LedgerClient interface for Ethereum-based
// networks. It communicates with the node via a JSON-RPC client.
type client struct {
	conn jsonrpc.Client // Underlying JSON-RPC client used to interact with the node
}

// Ensure client implements the explorer.LedgerClient interface at compile time.
var _ explorer.LedgerClient = (*client)(nil)

// NewClient creates a new Ethereum ledger client using the provided JSON-RPC
// connection. The returned client serves the point queries the scan engine
// builds its views from.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}

// isNullResult reports whether a JSON-RPC result payload is the literal null,
// which Ethereum nodes return for well-formed identifiers with no matching
// record.
func isNullResult(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

// fetch issues the JSON-RPC call and maps a null result to
// explorer.ErrNotFound so the engine can classify it.
func (c *client) fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	data, err := c.conn.Fetch(ctx, method, params...)
	if err != nil {
		return nil, err
	}
	if isNullResult(data) {
		return nil, explorer.ErrNotFound
	}
	return data, nil
}
