package ports

import (
	"context"

	"github.com/layer-3/drip/core"
)

// Chain abstracts the faucet contract and the funding wallet behind it.
// Implementations return typed errors (core.ErrAlreadyClaimed,
// core.ErrInsufficientFunds, core.ErrEnumerationUnsupported) rather than
// leaking raw RPC error text to callers.
type Chain interface {
	// HasClaimed reports whether the address already received its grant.
	HasClaimed(ctx context.Context, address string) (bool, error)

	// Claim submits the claim transaction from the funding wallet and waits
	// for one confirmation.
	Claim(ctx context.Context, address string) (*core.ClaimResult, error)

	// BalanceOf returns the token balance of an address in base units.
	BalanceOf(ctx context.Context, address string) (string, error)

	// Users enumerates claimant addresses. Returns
	// core.ErrEnumerationUnsupported when the deployed contract lacks the
	// enumeration entry points.
	Users(ctx context.Context) ([]string, error)

	// FunderBalance returns the ether balance of the funding wallet.
	FunderBalance(ctx context.Context) (string, error)

	// FunderAddress returns the address of the funding wallet.
	FunderAddress() string
}
