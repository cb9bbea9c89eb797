// Package network names the deployment environments the Hand Cricket
// contract ships on, pairing a network identity with the deployed contract
// address and a default RPC endpoint.
package network

import (
	stellarnet "github.com/stellar/go/network"
)

// TestnetContractID is the Hand Cricket instance deployed on testnet.
const TestnetContractID = "CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC"

// TestnetRPCURL is the public testnet Soroban RPC endpoint.
const TestnetRPCURL = "https://soroban-testnet.stellar.org"

// Network is one named deployment environment.
type Network struct {
	Name       string
	Passphrase string
	RPCURL     string
	ContractID string
}

// Testnet is the shipped deployment.
var Testnet = Network{
	Name:       "testnet",
	Passphrase: stellarnet.TestNetworkPassphrase,
	RPCURL:     TestnetRPCURL,
	ContractID: TestnetContractID,
}
