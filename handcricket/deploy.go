package handcricket

import (
	"context"
	"fmt"

	"github.com/stellar/go/xdr"

	"github.com/stellar-game-studio/handcricket-go/sorobind"
)

// DeployParams describes a new contract instance: the deployer account that
// signs the creation, the admin and game hub addresses passed to the on-chain
// constructor, the hash of the wasm already installed on the network, and a
// salt making the derived contract address unique.
type DeployParams struct {
	Deployer string
	Admin    string
	GameHub  string
	WasmHash [32]byte
	Salt     [32]byte
}

// Deploy assembles the transaction creating a new Hand Cricket contract
// instance. The call's Result is the strkey address the instance will live
// at; the instance exists only after SignAndSend succeeds.
func Deploy(ctx context.Context, backend Backend, params DeployParams, opts ...Option) (*AssembledCall[string], error) {
	deployer, err := sorobind.AccountScAddress(params.Deployer)
	if err != nil {
		return nil, fmt.Errorf("deployer: %w", err)
	}
	admin, err := sorobind.Address(params.Admin)
	if err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}
	hub, err := sorobind.Address(params.GameHub)
	if err != nil {
		return nil, fmt.Errorf("game hub: %w", err)
	}
	wasmHash := xdr.Hash(params.WasmHash)
	hostFn := xdr.HostFunction{
		Type: xdr.HostFunctionTypeHostFunctionTypeCreateContractV2,
		CreateContractV2: &xdr.CreateContractArgsV2{
			ContractIdPreimage: xdr.ContractIdPreimage{
				Type: xdr.ContractIdPreimageTypeContractIdPreimageFromAddress,
				FromAddress: &xdr.ContractIdPreimageFromAddress{
					Address: deployer,
					Salt:    xdr.Uint256(params.Salt),
				},
			},
			Executable: xdr.ContractExecutable{
				Type:     xdr.ContractExecutableTypeContractExecutableWasm,
				WasmHash: &wasmHash,
			},
			ConstructorArgs: []xdr.ScVal{admin, hub},
		},
	}
	c := newBaseClient(params.Deployer, backend, opts...)
	inv, err := c.execute(ctx, params.Deployer, "deploy", hostFn)
	if err != nil {
		return nil, err
	}
	return newCall(c, inv, sorobind.ToAddress)
}
