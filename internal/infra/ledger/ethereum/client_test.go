package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/chainscope/chainscope/internal/explorer"
	"github.com/chainscope/chainscope/internal/pkg/transport/jsonrpc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is an in-memory jsonrpc.Client that serves canned results keyed by
// method name and records the last call for request-shape assertions.
type fakeConn struct {
	results map[string]json.RawMessage
	err     error

	lastMethod string
	lastParams []any
}

var _ jsonrpc.Client = (*fakeConn)(nil)

func (f *fakeConn) Fetch(_ context.Context, method string, params ...any) (json.RawMessage, error) {
	f.lastMethod = method
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.results[method], nil
}

func TestNewClient(t *testing.T) {
	conn := &fakeConn{}
	c := NewClient(conn)

	require.NotNil(t, c)
	assert.Equal(t, conn, c.conn)
}

func TestHeadHeight(t *testing.T) {
	t.Run("decodes the hex height", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_blockNumber": json.RawMessage(`"0x64"`),
		}}

		height, err := NewClient(conn).HeadHeight(t.Context())

		require.NoError(t, err)
		assert.Equal(t, uint64(100), height)
		assert.Equal(t, "eth_blockNumber", conn.lastMethod)
	})

	t.Run("propagates transport failures", func(t *testing.T) {
		conn := &fakeConn{err: errors.New("connection refused")}

		_, err := NewClient(conn).HeadHeight(t.Context())
		assert.Error(t, err)
	})
}

func TestBlockByHeight(t *testing.T) {
	fullBlock := json.RawMessage(`{
		"number": "0x2a",
		"hash": "0xblockhash",
		"parentHash": "0xparent",
		"timestamp": "0x65432100",
		"miner": "0xminer",
		"difficulty": "0x12d687",
		"gasUsed": "0x5208",
		"gasLimit": "0x1c9c380",
		"size": "0x400",
		"transactions": [{
			"hash": "0xtxhash",
			"blockHash": "0xblockhash",
			"blockNumber": "0x2a",
			"transactionIndex": "0x0",
			"from": "0xsender",
			"to": "0xrecipient",
			"value": "0xde0b6b3a7640000",
			"gas": "0x5208",
			"gasPrice": "0x3b9aca00"
		}]
	}`)

	t.Run("maps a block with full transaction records", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getBlockByNumber": fullBlock,
		}}

		block, err := NewClient(conn).BlockByHeight(t.Context(), 42, true)

		require.NoError(t, err)
		assert.Equal(t, uint64(42), block.Height)
		assert.Equal(t, "0xblockhash", block.Hash)
		assert.Equal(t, "0xminer", block.Producer)
		assert.Equal(t, "1234567", block.Difficulty)
		assert.Equal(t, uint64(21_000), block.GasUsed)
		assert.Equal(t, 1, block.TxCount)

		require.Len(t, block.Transactions, 1)
		tx := block.Transactions[0]
		assert.Equal(t, "0xtxhash", tx.Hash)
		assert.Equal(t, uint64(42), tx.BlockHeight)
		assert.Equal(t, uint64(0), tx.Position)
		assert.Equal(t, "1000000000000000000", tx.Value)
		assert.Equal(t, "1000000000", tx.GasPrice)

		require.Len(t, conn.lastParams, 2)
		assert.Equal(t, true, conn.lastParams[1])
	})

	t.Run("hash-only listing still carries the transaction count", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getBlockByNumber": json.RawMessage(`{
				"number": "0x2a",
				"hash": "0xblockhash",
				"transactions": ["0xtx1", "0xtx2", "0xtx3"]
			}`),
		}}

		block, err := NewClient(conn).BlockByHeight(t.Context(), 42, false)

		require.NoError(t, err)
		assert.Equal(t, 3, block.TxCount)
		assert.Empty(t, block.Transactions)
		assert.Equal(t, false, conn.lastParams[1])
	})

	t.Run("null result means not found", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getBlockByNumber": json.RawMessage(`null`),
		}}

		_, err := NewClient(conn).BlockByHeight(t.Context(), 42, true)
		assert.ErrorIs(t, err, explorer.ErrNotFound)
	})
}

func TestBlockByHash(t *testing.T) {
	conn := &fakeConn{results: map[string]json.RawMessage{
		"eth_getBlockByHash": json.RawMessage(`{"number": "0x10", "hash": "0xabc", "transactions": []}`),
	}}

	block, err := NewClient(conn).BlockByHash(t.Context(), "0xabc")

	require.NoError(t, err)
	assert.Equal(t, uint64(16), block.Height)
	assert.Equal(t, []any{"0xabc", true}, conn.lastParams)
}

func TestTransactionByHash(t *testing.T) {
	t.Run("maps the transaction", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getTransactionByHash": json.RawMessage(`{
				"hash": "0xtxhash",
				"blockNumber": "0x10",
				"transactionIndex": "0x2",
				"from": "0xsender",
				"value": "0x0",
				"gas": "0x5208",
				"gasPrice": "0x3b9aca00"
			}`),
		}}

		tx, err := NewClient(conn).TransactionByHash(t.Context(), "0xtxhash")

		require.NoError(t, err)
		assert.Equal(t, uint64(16), tx.BlockHeight)
		assert.Equal(t, uint64(2), tx.Position)
		assert.Equal(t, "0", tx.Value)
		assert.Empty(t, tx.To)
		assert.True(t, tx.IsContractCreation())
	})

	t.Run("null result means not found", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getTransactionByHash": json.RawMessage(`null`),
		}}

		_, err := NewClient(conn).TransactionByHash(t.Context(), "0xmissing")
		assert.ErrorIs(t, err, explorer.ErrNotFound)
	})
}

func TestReceiptByHash(t *testing.T) {
	t.Run("maps a successful receipt with logs", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getTransactionReceipt": json.RawMessage(`{
				"transactionHash": "0xtxhash",
				"status": "0x1",
				"gasUsed": "0x7a120",
				"contractAddress": "0xdeployed",
				"logs": [{"address": "0xemitter", "topics": ["0xt0"], "data": "0xdata"}]
			}`),
		}}

		receipt, err := NewClient(conn).ReceiptByHash(t.Context(), "0xtxhash")

		require.NoError(t, err)
		assert.True(t, receipt.Success)
		assert.Equal(t, uint64(500_000), receipt.GasUsed)
		assert.Equal(t, "0xdeployed", receipt.ContractAddress)
		require.Len(t, receipt.Logs, 1)
		assert.Equal(t, "0xemitter", receipt.Logs[0].Address)
	})

	t.Run("status 0x0 means failed execution", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getTransactionReceipt": json.RawMessage(`{"transactionHash": "0xtxhash", "status": "0x0", "gasUsed": "0x5208"}`),
		}}

		receipt, err := NewClient(conn).ReceiptByHash(t.Context(), "0xtxhash")

		require.NoError(t, err)
		assert.False(t, receipt.Success)
	})

	t.Run("null result means not found", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getTransactionReceipt": json.RawMessage(`null`),
		}}

		_, err := NewClient(conn).ReceiptByHash(t.Context(), "0xmissing")
		assert.ErrorIs(t, err, explorer.ErrNotFound)
	})
}

func TestBalance(t *testing.T) {
	t.Run("normalizes the quantity to base 10", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getBalance": json.RawMessage(`"0xde0b6b3a7640000"`),
		}}

		balance, err := NewClient(conn).Balance(t.Context(), "0xaddr")

		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000", balance)
		assert.Equal(t, []any{"0xaddr", "latest"}, conn.lastParams)
	})

	t.Run("handles quantities beyond 64 bits", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getBalance": json.RawMessage(`"0xffffffffffffffffff"`),
		}}

		balance, err := NewClient(conn).Balance(t.Context(), "0xaddr")

		require.NoError(t, err)
		assert.Equal(t, "4722366482869645213695", balance)
	})
}

func TestCode(t *testing.T) {
	t.Run("decodes deployed code", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getCode": json.RawMessage(`"0x6080"`),
		}}

		code, err := NewClient(conn).Code(t.Context(), "0xaddr")

		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, code)
	})

	t.Run("externally owned account yields no code", func(t *testing.T) {
		conn := &fakeConn{results: map[string]json.RawMessage{
			"eth_getCode": json.RawMessage(`"0x"`),
		}}

		code, err := NewClient(conn).Code(t.Context(), "0xaddr")

		require.NoError(t, err)
		assert.Empty(t, code)
	})
}

func TestGasPrice(t *testing.T) {
	conn := &fakeConn{results: map[string]json.RawMessage{
		"eth_gasPrice": json.RawMessage(`"0x3b9aca00"`),
	}}

	price, err := NewClient(conn).GasPrice(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "1000000000", price)
}

func TestPeerCount(t *testing.T) {
	conn := &fakeConn{results: map[string]json.RawMessage{
		"net_peerCount": json.RawMessage(`"0x8"`),
	}}

	peers, err := NewClient(conn).PeerCount(t.Context())

	require.NoError(t, err)
	assert.Equal(t, uint64(8), peers)
}
