package core

import "time"

// Challenge is a pending SIWE sign-in message awaiting a signature.
// At most one challenge exists per address; issuing a new one overwrites it.
type Challenge struct {
	Address  string    // Lower-cased wallet address, canonical store key
	Message  string    // Canonical SIWE message text handed to the wallet
	Nonce    string    // Random nonce embedded in the message
	IssuedAt time.Time // When the challenge was created
}

// Session represents an authenticated user session
type Session struct {
	ID        string    // Unique session identifier
	Address   string    // Ethereum address of the user
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the session expires
}

// ClaimResult is the outcome of relaying a claim transaction
type ClaimResult struct {
	TxHash      string
	BlockNumber uint64
}

// FaucetStatus describes the faucet state for a single address
type FaucetStatus struct {
	Address    string
	HasClaimed bool
	Balance    string // Token balance in base units
	TotalUsers int
	Users      []string
}

// FaucetInfo describes the deployed faucet contract
type FaucetInfo struct {
	ContractAddress string
	FunderAddress   string
	FunderBalance   string // Ether-denominated balance of the funding wallet
	Network         string
	ChainID         int64
	TotalUsers      int
}
