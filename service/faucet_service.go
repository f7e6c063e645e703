package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/layer-3/drip/core"
	"github.com/layer-3/drip/ports"
)

// maxStatusUsers caps the claimant list returned in a status response
const maxStatusUsers = 10

// FaucetService relays claims to the faucet contract and aggregates its
// read-only state. The contract is the final arbiter of the one-claim rule;
// the pre-check here only avoids submitting transactions doomed to revert.
type FaucetService struct {
	chain  ports.Chain
	events ports.EventPublisher

	contractAddress string
	network         string
	chainID         int64
	log             zerolog.Logger
}

// NewFaucetService creates a new faucet service. events may be nil when no
// broker is configured.
func NewFaucetService(chain ports.Chain, events ports.EventPublisher, contractAddress, network string, chainID int64, log zerolog.Logger) *FaucetService {
	return &FaucetService{
		chain:           chain,
		events:          events,
		contractAddress: contractAddress,
		network:         network,
		chainID:         chainID,
		log:             log,
	}
}

// Claim checks on-chain claim status and submits the claim transaction
func (s *FaucetService) Claim(ctx context.Context, address string) (*core.ClaimResult, error) {
	claimed, err := s.chain.HasClaimed(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to check claim status: %w", err)
	}

	if claimed {
		return nil, core.ErrAlreadyClaimed
	}

	result, err := s.chain.Claim(ctx, address)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("address", address).
		Str("tx_hash", result.TxHash).
		Uint64("block", result.BlockNumber).
		Msg("tokens claimed")

	if s.events != nil {
		if err := s.events.PublishClaim(ctx, address, result.TxHash); err != nil {
			// The claim already landed on-chain; losing the event is not
			// worth failing the request over.
			s.log.Warn().Err(err).Msg("failed to publish claim event")
		}
	}

	return result, nil
}

// Status returns the faucet state for a single address
func (s *FaucetService) Status(ctx context.Context, address string) (*core.FaucetStatus, error) {
	claimed, err := s.chain.HasClaimed(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to check claim status: %w", err)
	}

	balance, err := s.chain.BalanceOf(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	users := s.listUsers(ctx)

	status := &core.FaucetStatus{
		Address:    address,
		HasClaimed: claimed,
		Balance:    balance,
		TotalUsers: len(users),
		Users:      users,
	}
	if len(status.Users) > maxStatusUsers {
		status.Users = status.Users[:maxStatusUsers]
	}

	return status, nil
}

// Info returns general information about the deployed faucet
func (s *FaucetService) Info(ctx context.Context) *core.FaucetInfo {
	users := s.listUsers(ctx)

	info := &core.FaucetInfo{
		ContractAddress: s.contractAddress,
		FunderAddress:   s.chain.FunderAddress(),
		Network:         s.network,
		ChainID:         s.chainID,
		TotalUsers:      len(users),
	}

	balance, err := s.chain.FunderBalance(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to get funder balance")
	} else {
		info.FunderBalance = balance
	}

	return info
}

// listUsers degrades to an empty list when the deployed contract lacks the
// enumeration entry point, or when enumeration fails outright
func (s *FaucetService) listUsers(ctx context.Context) []string {
	users, err := s.chain.Users(ctx)
	if err != nil {
		if !errors.Is(err, core.ErrEnumerationUnsupported) {
			s.log.Warn().Err(err).Msg("failed to enumerate claimants")
		}
		return []string{}
	}

	return users
}
