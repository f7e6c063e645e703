package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/drip/core"
)

// fakeChain scripts the faucet contract behavior for tests
type fakeChain struct {
	claimed       map[string]bool
	users         []string
	noEnumeration bool
	claimErr      error
	claimCalls    int
}

func newFakeChain() *fakeChain {
	return &fakeChain{claimed: make(map[string]bool)}
}

func (f *fakeChain) HasClaimed(ctx context.Context, address string) (bool, error) {
	return f.claimed[address], nil
}

func (f *fakeChain) Claim(ctx context.Context, address string) (*core.ClaimResult, error) {
	f.claimCalls++
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	f.claimed[address] = true
	f.users = append(f.users, address)
	return &core.ClaimResult{TxHash: fmt.Sprintf("0xtx%d", f.claimCalls), BlockNumber: 100}, nil
}

func (f *fakeChain) BalanceOf(ctx context.Context, address string) (string, error) {
	if f.claimed[address] {
		return "1000000000000000000", nil
	}
	return "0", nil
}

func (f *fakeChain) Users(ctx context.Context) ([]string, error) {
	if f.noEnumeration {
		return nil, core.ErrEnumerationUnsupported
	}
	return f.users, nil
}

func (f *fakeChain) FunderBalance(ctx context.Context) (string, error) {
	return "1.5", nil
}

func (f *fakeChain) FunderAddress() string {
	return "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
}

// fakePublisher records published claim events
type fakePublisher struct {
	published [][2]string
	err       error
}

func (f *fakePublisher) PublishClaim(ctx context.Context, address, txHash string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, [2]string{address, txHash})
	return nil
}

func newFaucetService(chain *fakeChain, events *fakePublisher) *FaucetService {
	// A typed nil in the interface would defeat the nil check in Claim.
	if events == nil {
		return NewFaucetService(chain, nil, "0xcontract", "Sepolia", 11155111, zerolog.Nop())
	}
	return NewFaucetService(chain, events, "0xcontract", "Sepolia", 11155111, zerolog.Nop())
}

const claimant = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

func TestClaim_Success(t *testing.T) {
	chain := newFakeChain()
	events := &fakePublisher{}
	svc := newFaucetService(chain, events)

	result, err := svc.Claim(context.Background(), claimant)
	require.NoError(t, err)
	require.Equal(t, "0xtx1", result.TxHash)
	require.Equal(t, 1, chain.claimCalls)

	require.Len(t, events.published, 1)
	require.Equal(t, claimant, events.published[0][0])
}

func TestClaim_AlreadyClaimedShortCircuits(t *testing.T) {
	chain := newFakeChain()
	chain.claimed[claimant] = true
	svc := newFaucetService(chain, nil)

	_, err := svc.Claim(context.Background(), claimant)
	require.ErrorIs(t, err, core.ErrAlreadyClaimed)
	require.Zero(t, chain.claimCalls) // no transaction submitted
}

func TestClaim_SecondClaimFails(t *testing.T) {
	chain := newFakeChain()
	svc := newFaucetService(chain, nil)
	ctx := context.Background()

	result, err := svc.Claim(ctx, claimant)
	require.NoError(t, err)
	require.NotEmpty(t, result.TxHash)

	_, err = svc.Claim(ctx, claimant)
	require.ErrorIs(t, err, core.ErrAlreadyClaimed)
	require.Equal(t, 1, chain.claimCalls)
}

func TestClaim_RaceSurfacesDomainError(t *testing.T) {
	// Pre-check passes but a concurrent claim lands first; the typed error
	// from the chain adapter passes through untouched.
	chain := newFakeChain()
	chain.claimErr = core.ErrAlreadyClaimed
	svc := newFaucetService(chain, nil)

	_, err := svc.Claim(context.Background(), claimant)
	require.ErrorIs(t, err, core.ErrAlreadyClaimed)
}

func TestClaim_PublisherFailureDoesNotFailClaim(t *testing.T) {
	chain := newFakeChain()
	events := &fakePublisher{err: fmt.Errorf("broker down")}
	svc := newFaucetService(chain, events)

	result, err := svc.Claim(context.Background(), claimant)
	require.NoError(t, err)
	require.NotEmpty(t, result.TxHash)
}

func TestStatus_LimitsUsers(t *testing.T) {
	chain := newFakeChain()
	for i := 0; i < 15; i++ {
		chain.users = append(chain.users, fmt.Sprintf("0xuser%02d", i))
	}
	chain.claimed[claimant] = true
	svc := newFaucetService(chain, nil)

	status, err := svc.Status(context.Background(), claimant)
	require.NoError(t, err)
	require.True(t, status.HasClaimed)
	require.Equal(t, "1000000000000000000", status.Balance)
	require.Equal(t, 15, status.TotalUsers)
	require.Len(t, status.Users, 10)
}

func TestStatus_EnumerationUnsupported(t *testing.T) {
	chain := newFakeChain()
	chain.noEnumeration = true
	svc := newFaucetService(chain, nil)

	status, err := svc.Status(context.Background(), claimant)
	require.NoError(t, err)
	require.Zero(t, status.TotalUsers)
	require.Empty(t, status.Users)
}

func TestInfo_DegradesWithoutEnumeration(t *testing.T) {
	chain := newFakeChain()
	chain.noEnumeration = true
	svc := newFaucetService(chain, nil)

	info := svc.Info(context.Background())
	require.Equal(t, "0xcontract", info.ContractAddress)
	require.Equal(t, "Sepolia", info.Network)
	require.Equal(t, int64(11155111), info.ChainID)
	require.Zero(t, info.TotalUsers)
	require.Equal(t, "1.5", info.FunderBalance)
}
