// Package config loads the CLI configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/stellar-game-studio/handcricket-go/network"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"HANDCRICKET_LOG_LEVEL" env-default:"info"`
	RPCURL            string `yaml:"rpc-url" env:"HANDCRICKET_RPC_URL"`
	NetworkPassphrase string `yaml:"network-passphrase" env:"HANDCRICKET_NETWORK_PASSPHRASE"`
	ContractID        string `yaml:"contract-id" env:"HANDCRICKET_CONTRACT_ID"`
	SecretSeed        string `yaml:"secret-seed" env:"HANDCRICKET_SECRET_SEED"`
}

// Load reads the configuration file at path. A missing file is fine; the
// environment alone can carry the whole configuration. Anything left unset
// falls back to the testnet deployment.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if config.RPCURL == "" {
		config.RPCURL = network.Testnet.RPCURL
	}
	if config.NetworkPassphrase == "" {
		config.NetworkPassphrase = network.Testnet.Passphrase
	}
	if config.ContractID == "" {
		config.ContractID = network.Testnet.ContractID
	}
	return config, nil
}
