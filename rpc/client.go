// Package rpc is a minimal Soroban RPC client covering what the contract
// bindings need: simulation, submission, outcome polling and account
// sequence lookup.
package rpc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/stellar/go/xdr"
)

// Client talks JSON-RPC to one Soroban RPC endpoint. It is safe for
// concurrent use.
type Client struct {
	url     string
	channel *jhttp.Channel
	rpc     *jrpc2.Client
}

// NewClient connects to the RPC endpoint at url. Pass a nil httpClient to
// use http.DefaultClient.
func NewClient(url string, httpClient *http.Client) *Client {
	opts := &jhttp.ChannelOptions{}
	if httpClient != nil {
		opts.Client = httpClient
	}
	channel := jhttp.NewChannel(url, opts)
	return &Client{
		url:     url,
		channel: channel,
		rpc:     jrpc2.NewClient(channel, nil),
	}
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string {
	return c.url
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}

// GetHealth reports node liveness.
func (c *Client) GetHealth(ctx context.Context) (*GetHealthResponse, error) {
	var resp GetHealthResponse
	if err := c.rpc.CallResult(ctx, "getHealth", nil, &resp); err != nil {
		return nil, fmt.Errorf("getHealth: %w", err)
	}
	return &resp, nil
}

// SimulateTransaction runs the transaction against current ledger state
// without submitting it.
func (c *Client) SimulateTransaction(ctx context.Context, txXDR string) (*SimulateTransactionResponse, error) {
	var resp SimulateTransactionResponse
	req := SimulateTransactionRequest{Transaction: txXDR}
	if err := c.rpc.CallResult(ctx, "simulateTransaction", req, &resp); err != nil {
		return nil, fmt.Errorf("simulateTransaction: %w", err)
	}
	return &resp, nil
}

// SendTransaction submits a signed transaction. Acceptance is not success:
// poll GetTransaction for the outcome.
func (c *Client) SendTransaction(ctx context.Context, txXDR string) (*SendTransactionResponse, error) {
	var resp SendTransactionResponse
	req := SendTransactionRequest{Transaction: txXDR}
	if err := c.rpc.CallResult(ctx, "sendTransaction", req, &resp); err != nil {
		return nil, fmt.Errorf("sendTransaction: %w", err)
	}
	return &resp, nil
}

// GetTransaction fetches the outcome of a submitted transaction.
func (c *Client) GetTransaction(ctx context.Context, hash string) (*GetTransactionResponse, error) {
	var resp GetTransactionResponse
	req := GetTransactionRequest{Hash: hash}
	if err := c.rpc.CallResult(ctx, "getTransaction", req, &resp); err != nil {
		return nil, fmt.Errorf("getTransaction: %w", err)
	}
	return &resp, nil
}

// GetLedgerEntries fetches current ledger entries by base64-encoded keys.
func (c *Client) GetLedgerEntries(ctx context.Context, keys []string) (*GetLedgerEntriesResponse, error) {
	var resp GetLedgerEntriesResponse
	req := GetLedgerEntriesRequest{Keys: keys}
	if err := c.rpc.CallResult(ctx, "getLedgerEntries", req, &resp); err != nil {
		return nil, fmt.Errorf("getLedgerEntries: %w", err)
	}
	return &resp, nil
}

// AccountSequence looks up the current sequence number of an account.
func (c *Client) AccountSequence(ctx context.Context, accountID string) (int64, error) {
	aid, err := xdr.AddressToAccountId(accountID)
	if err != nil {
		return 0, fmt.Errorf("invalid account %q: %w", accountID, err)
	}
	key := xdr.LedgerKey{
		Type:    xdr.LedgerEntryTypeAccount,
		Account: &xdr.LedgerKeyAccount{AccountId: aid},
	}
	keyXDR, err := xdr.MarshalBase64(key)
	if err != nil {
		return 0, fmt.Errorf("encode ledger key: %w", err)
	}
	resp, err := c.GetLedgerEntries(ctx, []string{keyXDR})
	if err != nil {
		return 0, err
	}
	if len(resp.Entries) == 0 {
		return 0, fmt.Errorf("account %s not found", accountID)
	}
	var data xdr.LedgerEntryData
	if err := xdr.SafeUnmarshalBase64(resp.Entries[0].XDR, &data); err != nil {
		return 0, fmt.Errorf("decode account entry: %w", err)
	}
	if data.Type != xdr.LedgerEntryTypeAccount || data.Account == nil {
		return 0, fmt.Errorf("unexpected ledger entry type %s for account %s", data.Type, accountID)
	}
	return int64(data.Account.SeqNum), nil
}
