package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/layer-3/drip/core"
)

// faucetABI covers the deployed faucet contract. The users/getUsersLength
// entry points are optional; older deployments lack them.
const faucetABI = `[
	{"type":"function","name":"claimTokens","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"hasAddressClaimed","stateMutability":"view","inputs":[{"name":"addr","type":"address"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"users","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"type":"address"}]},
	{"type":"function","name":"getUsersLength","stateMutability":"view","inputs":[],"outputs":[{"type":"uint256"}]}
]`

// Config holds the chain connection parameters
type Config struct {
	RPCURL          string
	PrivateKey      string // Hex-encoded funding wallet key
	ContractAddress string
	ChainID         int64
	GasLimit        uint64 // Fixed gas-limit hint for claim transactions
}

// EthFaucet talks to the faucet contract over an Ethereum RPC endpoint and
// signs claim transactions with the funding wallet. It implements ports.Chain.
type EthFaucet struct {
	client   *ethclient.Client
	abi      abi.ABI
	key      *ecdsa.PrivateKey
	funder   common.Address
	contract common.Address
	chainID  *big.Int
	gasLimit uint64
	log      zerolog.Logger
}

// New connects to the RPC endpoint and verifies the chain id
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*EthFaucet, error) {
	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if chainID.Int64() != cfg.ChainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", cfg.ChainID, chainID.Int64())
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("invalid funding wallet key: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(faucetABI))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("invalid faucet ABI: %w", err)
	}

	funder := crypto.PubkeyToAddress(key.PublicKey)

	log.Info().
		Str("funder", funder.Hex()).
		Str("contract", cfg.ContractAddress).
		Int64("chain_id", cfg.ChainID).
		Msg("connected to chain")

	return &EthFaucet{
		client:   client,
		abi:      parsedABI,
		key:      key,
		funder:   funder,
		contract: common.HexToAddress(cfg.ContractAddress),
		chainID:  chainID,
		gasLimit: cfg.GasLimit,
		log:      log,
	}, nil
}

// HasClaimed reports whether the address already received its grant
func (f *EthFaucet) HasClaimed(ctx context.Context, address string) (bool, error) {
	out, err := f.call(ctx, "hasAddressClaimed", common.HexToAddress(address))
	if err != nil {
		return false, fmt.Errorf("failed to check claim status: %w", err)
	}

	claimed, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected hasAddressClaimed result type %T", out[0])
	}

	return claimed, nil
}

// Claim submits the claim transaction and waits for one confirmation
func (f *EthFaucet) Claim(ctx context.Context, address string) (*core.ClaimResult, error) {
	data, err := f.abi.Pack("claimTokens")
	if err != nil {
		return nil, fmt.Errorf("failed to pack method call: %w", err)
	}

	nonce, err := f.client.PendingNonceAt(ctx, f.funder)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := f.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, f.contract, big.NewInt(0), f.gasLimit, gasPrice, data)

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(f.chainID), f.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := f.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, classifyError(err)
	}

	f.log.Info().
		Str("address", address).
		Str("tx_hash", signedTx.Hash().Hex()).
		Msg("claim transaction sent")

	receipt, err := bind.WaitMined(ctx, f.client, signedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for confirmation: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		// claimTokens only reverts when the address claimed between our
		// pre-check and the transaction landing; the contract is the arbiter.
		return nil, core.ErrAlreadyClaimed
	}

	return &core.ClaimResult{
		TxHash:      signedTx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

// BalanceOf returns the token balance of an address in base units
func (f *EthFaucet) BalanceOf(ctx context.Context, address string) (string, error) {
	out, err := f.call(ctx, "balanceOf", common.HexToAddress(address))
	if err != nil {
		return "", fmt.Errorf("failed to get balance: %w", err)
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return "", fmt.Errorf("unexpected balanceOf result type %T", out[0])
	}

	return balance.String(), nil
}

// Users enumerates claimant addresses via the optional users/getUsersLength
// entry points
func (f *EthFaucet) Users(ctx context.Context) ([]string, error) {
	out, err := f.call(ctx, "getUsersLength")
	if err != nil {
		// A contract without the enumeration entry point reverts or returns
		// undecodable data here.
		return nil, core.ErrEnumerationUnsupported
	}

	length, ok := out[0].(*big.Int)
	if !ok {
		return nil, core.ErrEnumerationUnsupported
	}

	users := make([]string, 0, length.Int64())
	for i := int64(0); i < length.Int64(); i++ {
		out, err := f.call(ctx, "users", big.NewInt(i))
		if err != nil {
			f.log.Warn().Int64("index", i).Err(err).Msg("failed to fetch user")
			continue
		}
		if addr, ok := out[0].(common.Address); ok {
			users = append(users, addr.Hex())
		}
	}

	return users, nil
}

// FunderBalance returns the ether balance of the funding wallet
func (f *EthFaucet) FunderBalance(ctx context.Context) (string, error) {
	wei, err := f.client.BalanceAt(ctx, f.funder, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get funder balance: %w", err)
	}

	return decimal.NewFromBigInt(wei, -18).String(), nil
}

// FunderAddress returns the address of the funding wallet
func (f *EthFaucet) FunderAddress() string {
	return f.funder.Hex()
}

// Close closes the RPC connection
func (f *EthFaucet) Close() {
	f.client.Close()
}

// call executes a read-only contract method and unpacks the result
func (f *EthFaucet) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := f.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack method call: %w", err)
	}

	msg := ethereum.CallMsg{
		To:   &f.contract,
		Data: data,
	}

	result, err := f.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	out, err := f.abi.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("method %s returned no outputs", method)
	}

	return out, nil
}
