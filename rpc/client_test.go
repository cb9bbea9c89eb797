package rpc

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient serves the given methods over a local HTTP bridge and
// returns a Client pointed at it.
func newTestClient(t *testing.T, methods handler.Map) *Client {
	t.Helper()
	bridge := jhttp.NewBridge(methods, nil)
	srv := httptest.NewServer(bridge)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { bridge.Close() })
	client := NewClient(srv.URL, srv.Client())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestGetHealth(t *testing.T) {
	client := newTestClient(t, handler.Map{
		"getHealth": handler.New(func(ctx context.Context) (GetHealthResponse, error) {
			return GetHealthResponse{Status: "healthy", LatestLedger: 1200}, nil
		}),
	})

	resp, err := client.GetHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, uint32(1200), resp.LatestLedger)
}

func TestSimulateTransaction(t *testing.T) {
	var gotTx string
	client := newTestClient(t, handler.Map{
		"simulateTransaction": handler.New(func(ctx context.Context, req SimulateTransactionRequest) (SimulateTransactionResponse, error) {
			gotTx = req.Transaction
			return SimulateTransactionResponse{
				TransactionData: "dGVzdA==",
				MinResourceFee:  54321,
				Results: []SimulateHostFunctionResult{
					{XDR: "AAAAAQ=="},
				},
				LatestLedger: 7,
			}, nil
		}),
	})

	resp, err := client.SimulateTransaction(context.Background(), "ZW52ZWxvcGU=")
	require.NoError(t, err)
	assert.Equal(t, "ZW52ZWxvcGU=", gotTx)
	assert.Empty(t, resp.Error)
	assert.Equal(t, int64(54321), resp.MinResourceFee)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "AAAAAQ==", resp.Results[0].XDR)
}

func TestSimulateTransactionHostError(t *testing.T) {
	client := newTestClient(t, handler.Map{
		"simulateTransaction": handler.New(func(ctx context.Context, req SimulateTransactionRequest) (SimulateTransactionResponse, error) {
			return SimulateTransactionResponse{
				Error: "HostError: Error(Contract, #4)",
			}, nil
		}),
	})

	resp, err := client.SimulateTransaction(context.Background(), "ZW52ZWxvcGU=")
	require.NoError(t, err)
	assert.Contains(t, resp.Error, "Error(Contract, #4)")
}

func TestSendTransaction(t *testing.T) {
	client := newTestClient(t, handler.Map{
		"sendTransaction": handler.New(func(ctx context.Context, req SendTransactionRequest) (SendTransactionResponse, error) {
			return SendTransactionResponse{Status: SendStatusPending, Hash: "abc123"}, nil
		}),
	})

	resp, err := client.SendTransaction(context.Background(), "ZW52ZWxvcGU=")
	require.NoError(t, err)
	assert.Equal(t, SendStatusPending, resp.Status)
	assert.Equal(t, "abc123", resp.Hash)
}

func TestGetTransaction(t *testing.T) {
	var gotHash string
	client := newTestClient(t, handler.Map{
		"getTransaction": handler.New(func(ctx context.Context, req GetTransactionRequest) (GetTransactionResponse, error) {
			gotHash = req.Hash
			return GetTransactionResponse{Status: TransactionStatusSuccess, Ledger: 42}, nil
		}),
	})

	resp, err := client.GetTransaction(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", gotHash)
	assert.Equal(t, TransactionStatusSuccess, resp.Status)
	assert.Equal(t, uint32(42), resp.Ledger)
}

func TestAccountSequence(t *testing.T) {
	address := keypair.MustRandom().Address()
	aid, err := xdr.AddressToAccountId(address)
	require.NoError(t, err)

	entry := xdr.LedgerEntryData{
		Type: xdr.LedgerEntryTypeAccount,
		Account: &xdr.AccountEntry{
			AccountId: aid,
			SeqNum:    xdr.SequenceNumber(42),
		},
	}
	entryXDR, err := xdr.MarshalBase64(entry)
	require.NoError(t, err)

	var gotKeys []string
	client := newTestClient(t, handler.Map{
		"getLedgerEntries": handler.New(func(ctx context.Context, req GetLedgerEntriesRequest) (GetLedgerEntriesResponse, error) {
			gotKeys = req.Keys
			return GetLedgerEntriesResponse{
				Entries: []LedgerEntryResult{{Key: req.Keys[0], XDR: entryXDR}},
			}, nil
		}),
	})

	seq, err := client.AccountSequence(context.Background(), address)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)

	// The request key must be the account's own ledger key.
	require.Len(t, gotKeys, 1)
	var key xdr.LedgerKey
	require.NoError(t, xdr.SafeUnmarshalBase64(gotKeys[0], &key))
	require.Equal(t, xdr.LedgerEntryTypeAccount, key.Type)
	assert.Equal(t, address, key.Account.AccountId.Address())
}

func TestAccountSequenceNotFound(t *testing.T) {
	client := newTestClient(t, handler.Map{
		"getLedgerEntries": handler.New(func(ctx context.Context, req GetLedgerEntriesRequest) (GetLedgerEntriesResponse, error) {
			return GetLedgerEntriesResponse{}, nil
		}),
	})

	_, err := client.AccountSequence(context.Background(), keypair.MustRandom().Address())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAccountSequenceRejectsBadAddress(t *testing.T) {
	client := newTestClient(t, handler.Map{})
	_, err := client.AccountSequence(context.Background(), "not-an-address")
	require.Error(t, err)
}
