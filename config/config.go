package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port            string
	RPCURL          string
	PrivateKey      string // Funding wallet key, hex
	ContractAddress string
	ChainID         int64
	Network         string
	ExplorerURL     string
	Domain          string // Fallback SIWE domain when the request has no Host
	Origin          string // Fallback SIWE URI when the request has no Origin
	GasLimit        uint64 // Gas-limit hint for claim transactions
	RedisURL        string // Optional; memory store and no events when unset
}

// Load reads configuration from the environment, honoring a .env file
func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        "9000",
		ChainID:     11155111,
		Network:     "Sepolia",
		ExplorerURL: "https://sepolia.etherscan.io",
		GasLimit:    200000,
	}

	cfg.RPCURL = os.Getenv("RPC_URL")
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC_URL environment variable is required")
	}

	cfg.PrivateKey = os.Getenv("PRIVATE_KEY")
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("PRIVATE_KEY environment variable is required")
	}

	cfg.ContractAddress = os.Getenv("CONTRACT_ADDRESS")
	if cfg.ContractAddress == "" {
		return nil, fmt.Errorf("CONTRACT_ADDRESS environment variable is required")
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if chainID := os.Getenv("CHAIN_ID"); chainID != "" {
		parsed, err := strconv.ParseInt(chainID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CHAIN_ID: %w", err)
		}
		cfg.ChainID = parsed
	}

	if network := os.Getenv("NETWORK"); network != "" {
		cfg.Network = network
	}

	if explorer := os.Getenv("EXPLORER_URL"); explorer != "" {
		cfg.ExplorerURL = explorer
	}

	cfg.Domain = os.Getenv("DOMAIN")
	if cfg.Domain == "" {
		cfg.Domain = "localhost:" + cfg.Port
	}

	cfg.Origin = os.Getenv("ORIGIN")
	if cfg.Origin == "" {
		cfg.Origin = "http://" + cfg.Domain
	}

	if gasLimit := os.Getenv("CLAIM_GAS_LIMIT"); gasLimit != "" {
		parsed, err := strconv.ParseUint(gasLimit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CLAIM_GAS_LIMIT: %w", err)
		}
		cfg.GasLimit = parsed
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")

	return cfg, nil
}
