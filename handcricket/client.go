package handcricket

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/stellar-game-studio/handcricket-go/rpc"
	"github.com/stellar-game-studio/handcricket-go/sorobind"
)

// Backend is the RPC and transaction-building collaborator the proxy talks
// to. It is treated as a black box: the binding performs no retries and no
// caching on top of it.
type Backend interface {
	AccountSequence(ctx context.Context, accountID string) (int64, error)
	SimulateTransaction(ctx context.Context, txXDR string) (*rpc.SimulateTransactionResponse, error)
	SendTransaction(ctx context.Context, txXDR string) (*rpc.SendTransactionResponse, error)
	GetTransaction(ctx context.Context, hash string) (*rpc.GetTransactionResponse, error)
}

// Void is the result type of contract methods that return nothing.
type Void = struct{}

// Option configures a Client.
type Option func(*Client)

// WithNetworkPassphrase sets the passphrase transactions are signed for.
// Defaults to testnet.
func WithNetworkPassphrase(passphrase string) Option {
	return func(c *Client) { c.passphrase = passphrase }
}

// WithBaseFee sets the per-operation base fee in stroops.
func WithBaseFee(fee int64) Option {
	return func(c *Client) { c.baseFee = fee }
}

// WithTimeout sets the transaction validity window in seconds.
func WithTimeout(seconds int64) Option {
	return func(c *Client) { c.timeoutSecs = seconds }
}

// WithPollInterval sets how often SignAndSend polls for the transaction
// outcome.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// Client is the typed proxy for one deployed Hand Cricket contract instance.
// All state lives in the remote contract; the client holds only addressing
// and transaction parameters.
type Client struct {
	contractID string
	address    xdr.ScAddress
	source     string
	backend    Backend

	passphrase   string
	baseFee      int64
	timeoutSecs  int64
	pollInterval time.Duration
}

func newBaseClient(sourceAccount string, backend Backend, opts ...Option) *Client {
	c := &Client{
		source:       sourceAccount,
		backend:      backend,
		passphrase:   network.TestNetworkPassphrase,
		baseFee:      txnbuild.MinBaseFee,
		timeoutSecs:  300,
		pollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient creates a proxy for the contract deployed at contractID.
// sourceAccount is the default transaction source, used for read-only
// queries and admin calls; player calls use the player as source.
func NewClient(contractID, sourceAccount string, backend Backend, opts ...Option) (*Client, error) {
	address, err := sorobind.ContractScAddress(contractID)
	if err != nil {
		return nil, err
	}
	c := newBaseClient(sourceAccount, backend, opts...)
	c.contractID = contractID
	c.address = address
	return c, nil
}

// ContractID returns the strkey address of the bound contract.
func (c *Client) ContractID() string {
	return c.contractID
}

// AssembledCall is a locally simulated, signable transaction descriptor for
// one contract invocation. Result holds the value the simulation returned;
// the state change itself only happens after SignAndSend.
type AssembledCall[T any] struct {
	Tx          *txnbuild.Transaction
	Result      T
	ReturnValue xdr.ScVal
	Simulation  *rpc.SimulateTransactionResponse

	client *Client
}

// SignAndSend authorizes the assembled transaction with the given signers,
// submits it, and polls until the ledger reports an outcome. Once submitted
// the transaction cannot be canceled; canceling ctx merely stops waiting.
func (a *AssembledCall[T]) SignAndSend(ctx context.Context, signers ...*keypair.Full) (*rpc.GetTransactionResponse, error) {
	tx, err := a.Tx.Sign(a.client.passphrase, signers...)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	txXDR, err := tx.Base64()
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	sent, err := a.client.backend.SendTransaction(ctx, txXDR)
	if err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	if sent.Status == rpc.SendStatusError {
		return nil, fmt.Errorf("transaction rejected: %s", sent.ErrorResultXDR)
	}
	for {
		resp, err := a.client.backend.GetTransaction(ctx, sent.Hash)
		if err != nil {
			return nil, fmt.Errorf("get transaction %s: %w", sent.Hash, err)
		}
		switch resp.Status {
		case rpc.TransactionStatusSuccess:
			return resp, nil
		case rpc.TransactionStatusFailed:
			return resp, fmt.Errorf("transaction %s failed: %s", sent.Hash, resp.ResultXDR)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.client.pollInterval):
		}
	}
}

type invocation struct {
	fn  string
	tx  *txnbuild.Transaction
	sim *rpc.SimulateTransactionResponse
	ret xdr.ScVal
}

// execute simulates a host function from source and assembles the final
// transaction with the simulation's resource footprint, fee and auth.
func (c *Client) execute(ctx context.Context, source string, fn string, hostFn xdr.HostFunction) (*invocation, error) {
	seq, err := c.backend.AccountSequence(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch sequence for %s: %w", fn, source, err)
	}
	op := &txnbuild.InvokeHostFunction{
		HostFunction:  hostFn,
		SourceAccount: source,
	}
	build := func(fee int64) (*txnbuild.Transaction, error) {
		return txnbuild.NewTransaction(txnbuild.TransactionParams{
			SourceAccount:        &txnbuild.SimpleAccount{AccountID: source, Sequence: seq},
			IncrementSequenceNum: true,
			Operations:           []txnbuild.Operation{op},
			BaseFee:              fee,
			Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(c.timeoutSecs)},
		})
	}
	tx, err := build(c.baseFee)
	if err != nil {
		return nil, fmt.Errorf("%s: build transaction: %w", fn, err)
	}
	txXDR, err := tx.Base64()
	if err != nil {
		return nil, fmt.Errorf("%s: encode transaction: %w", fn, err)
	}
	sim, err := c.backend.SimulateTransaction(ctx, txXDR)
	if err != nil {
		return nil, fmt.Errorf("%s: simulate: %w", fn, err)
	}
	if sim.Error != "" {
		return nil, simulationError(fn, sim.Error)
	}
	if sim.TransactionData != "" {
		var sd xdr.SorobanTransactionData
		if err := xdr.SafeUnmarshalBase64(sim.TransactionData, &sd); err != nil {
			return nil, fmt.Errorf("%s: decode transaction data: %w", fn, err)
		}
		op.Ext = xdr.TransactionExt{V: 1, SorobanData: &sd}
	}
	var ret xdr.ScVal
	if len(sim.Results) > 0 {
		res := sim.Results[0]
		if res.XDR != "" {
			if err := xdr.SafeUnmarshalBase64(res.XDR, &ret); err != nil {
				return nil, fmt.Errorf("%s: decode return value: %w", fn, err)
			}
		}
		for _, authXDR := range res.Auth {
			var entry xdr.SorobanAuthorizationEntry
			if err := xdr.SafeUnmarshalBase64(authXDR, &entry); err != nil {
				return nil, fmt.Errorf("%s: decode auth entry: %w", fn, err)
			}
			op.Auth = append(op.Auth, entry)
		}
	}
	if code, ok := sorobind.ContractErrorCode(ret); ok {
		return nil, contractError(fn, code)
	}
	tx, err = build(c.baseFee + sim.MinResourceFee)
	if err != nil {
		return nil, fmt.Errorf("%s: assemble transaction: %w", fn, err)
	}
	return &invocation{fn: fn, tx: tx, sim: sim, ret: ret}, nil
}

// invoke simulates and assembles a call to a contract entry point.
func (c *Client) invoke(ctx context.Context, source, fn string, args ...xdr.ScVal) (*invocation, error) {
	if err := checkCall(fn, len(args)); err != nil {
		return nil, err
	}
	hostFn := xdr.HostFunction{
		Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
		InvokeContract: &xdr.InvokeContractArgs{
			ContractAddress: c.address,
			FunctionName:    xdr.ScSymbol(fn),
			Args:            args,
		},
	}
	return c.execute(ctx, source, fn, hostFn)
}

func simulationError(fn, msg string) error {
	if code, ok := sorobind.ContractErrorFromDiagnostic(msg); ok {
		return contractError(fn, code)
	}
	return fmt.Errorf("%s: simulation failed: %s", fn, msg)
}

func contractError(fn string, code uint32) error {
	if e, ok := ErrorFromCode(code); ok {
		return fmt.Errorf("%s: %w", fn, e)
	}
	return fmt.Errorf("%s: contract error code %d", fn, code)
}

func newCall[T any](c *Client, inv *invocation, decode func(xdr.ScVal) (T, error)) (*AssembledCall[T], error) {
	call := &AssembledCall[T]{
		Tx:          inv.tx,
		ReturnValue: inv.ret,
		Simulation:  inv.sim,
		client:      c,
	}
	if decode != nil {
		result, err := decode(inv.ret)
		if err != nil {
			return nil, fmt.Errorf("%s: decode result: %w", inv.fn, err)
		}
		call.Result = result
	}
	return call, nil
}

func (c *Client) voidCall(ctx context.Context, source, fn string, args ...xdr.ScVal) (*AssembledCall[Void], error) {
	inv, err := c.invoke(ctx, source, fn, args...)
	if err != nil {
		return nil, err
	}
	return newCall[Void](c, inv, nil)
}

// GetHub returns the game hub contract address.
func (c *Client) GetHub(ctx context.Context) (*AssembledCall[string], error) {
	inv, err := c.invoke(ctx, c.source, "get_hub")
	if err != nil {
		return nil, err
	}
	return newCall(c, inv, sorobind.ToAddress)
}

// SetHub points the contract at a new game hub. Admin only, enforced
// remotely.
func (c *Client) SetHub(ctx context.Context, newHub string) (*AssembledCall[Void], error) {
	hub, err := sorobind.Address(newHub)
	if err != nil {
		return nil, err
	}
	return c.voidCall(ctx, c.source, "set_hub", hub)
}

// Upgrade swaps the contract's code for the wasm already installed under
// newWasmHash. Admin only, enforced remotely.
func (c *Client) Upgrade(ctx context.Context, newWasmHash [32]byte) (*AssembledCall[Void], error) {
	return c.voidCall(ctx, c.source, "upgrade", sorobind.BytesN32(newWasmHash))
}

// GetGame fetches the session's current on-chain record. An unknown session
// id yields ErrGameNotFound.
func (c *Client) GetGame(ctx context.Context, sessionID uint32) (*AssembledCall[Game], error) {
	inv, err := c.invoke(ctx, c.source, "get_game", sorobind.U32(sessionID))
	if err != nil {
		return nil, err
	}
	return newCall(c, inv, func(v xdr.ScVal) (Game, error) {
		var game Game
		err := game.UnmarshalScVal(v)
		return game, err
	})
}

// GetAdmin returns the contract's admin address.
func (c *Client) GetAdmin(ctx context.Context) (*AssembledCall[string], error) {
	inv, err := c.invoke(ctx, c.source, "get_admin")
	if err != nil {
		return nil, err
	}
	return newCall(c, inv, sorobind.ToAddress)
}

// SetAdmin hands the contract to a new admin. Admin only, enforced remotely.
func (c *Client) SetAdmin(ctx context.Context, newAdmin string) (*AssembledCall[Void], error) {
	admin, err := sorobind.Address(newAdmin)
	if err != nil {
		return nil, err
	}
	return c.voidCall(ctx, c.source, "set_admin", admin)
}

// StartGame opens a new session between two players with their wagered
// points. Both players must authorize the assembled transaction. Identical
// players yield ErrSelfPlay; a reused session id yields ErrGameAlreadyEnded.
func (c *Client) StartGame(ctx context.Context, sessionID uint32, player1, player2 string, player1Points, player2Points *big.Int) (*AssembledCall[Void], error) {
	p1, err := sorobind.Address(player1)
	if err != nil {
		return nil, err
	}
	p2, err := sorobind.Address(player2)
	if err != nil {
		return nil, err
	}
	stake1, err := sorobind.I128(orZero(player1Points))
	if err != nil {
		return nil, fmt.Errorf("player1_points: %w", err)
	}
	stake2, err := sorobind.I128(orZero(player2Points))
	if err != nil {
		return nil, fmt.Errorf("player2_points: %w", err)
	}
	return c.voidCall(ctx, player1, "start_game", sorobind.U32(sessionID), p1, p2, stake1, stake2)
}

// ChooseRole lets the toss winner pick batting (bat=true) or bowling.
func (c *Client) ChooseRole(ctx context.Context, sessionID uint32, player string, bat bool) (*AssembledCall[Void], error) {
	addr, err := sorobind.Address(player)
	if err != nil {
		return nil, err
	}
	return c.voidCall(ctx, player, "choose_role", sorobind.U32(sessionID), addr, sorobind.Bool(bat))
}

// CommitNumber publishes the player's hiding commitment for the current
// commit phase. Committing twice yields ErrAlreadyCommitted.
func (c *Client) CommitNumber(ctx context.Context, sessionID uint32, player string, commitment [32]byte) (*AssembledCall[Void], error) {
	addr, err := sorobind.Address(player)
	if err != nil {
		return nil, err
	}
	return c.voidCall(ctx, player, "commit_number", sorobind.U32(sessionID), addr, sorobind.BytesN32(commitment))
}

// RevealNumber opens the player's commitment with the revealed number and
// its proof blob. Revealing without a commitment yields ErrCommitMissing; a
// proof not matching the stored commitment yields ErrProofInvalid.
func (c *Client) RevealNumber(ctx context.Context, sessionID uint32, player string, number uint32, proof []byte) (*AssembledCall[Void], error) {
	addr, err := sorobind.Address(player)
	if err != nil {
		return nil, err
	}
	return c.voidCall(ctx, player, "reveal_number", sorobind.U32(sessionID), addr, sorobind.U32(number), sorobind.Bytes(proof))
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
