// Package chainrpc talks JSON-RPC 2.0 to the chain endpoint serving both the
// account directory (condenser-style get_accounts) and the signing broadcaster.
// Transaction signing happens behind the endpoint; this client only forwards
// the authorized batch and the posting key material.
package chainrpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/adcpm/sc2/core"
	"github.com/adcpm/sc2/ports"
)

// Client implements the AccountDirectory and Broadcaster ports over a single
// JSON-RPC connection.
type Client struct {
	rpc *rpc.Client
}

var (
	_ ports.AccountDirectory = (*Client)(nil)
	_ ports.Broadcaster      = (*Client)(nil)
)

// Dial connects to the chain RPC endpoint.
func Dial(ctx context.Context, url string) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc: %w", err)
	}
	return &Client{rpc: c}, nil
}

// NewClient wraps an existing RPC client.
func NewClient(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

// GetAccounts resolves the given usernames to their account records. Unknown
// names are simply absent from the result.
func (c *Client) GetAccounts(ctx context.Context, names []string) ([]core.Account, error) {
	var accounts []core.Account
	if err := c.rpc.CallContext(ctx, &accounts, "condenser_api.get_accounts", names); err != nil {
		return nil, fmt.Errorf("get_accounts: %w", err)
	}
	return accounts, nil
}

// transaction is the wire form the broadcaster expects: the operation batch
// plus the mandatory empty extensions marker.
type transaction struct {
	Operations []core.Operation `json:"operations"`
	Extensions []any            `json:"extensions"`
}

// Broadcast submits the batch for signing with the posting key and synchronous
// inclusion. The node's raw result is returned unchanged; node errors surface
// with their own message.
func (c *Client) Broadcast(ctx context.Context, operations []core.Operation, postingKey string) (json.RawMessage, error) {
	tx := transaction{
		Operations: operations,
		Extensions: []any{},
	}

	var result json.RawMessage
	err := c.rpc.CallContext(ctx, &result, "network_broadcast_api.broadcast_transaction_synchronous", tx, []string{postingKey})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close tears down the underlying RPC connection.
func (c *Client) Close() {
	c.rpc.Close()
}
