package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
)

// knownRevertErrors maps contract custom error signatures to their names.
// The 4-byte selectors are derived at init.
var knownRevertErrors = []string{
	"ERC721__InvalidToken()",
	"ERC721__NotAllowed()",
	"ERC721__TokenNotOwned()",
	"Warps__MintPriceNotMet()",
	"Warps__FreeMintUsed()",
	"Warps__MismatchedWarpCount()",
	"Warps__NotWinningToken()",
	"Warps__NothingToClaim()",
}

var revertSelectors = buildRevertSelectors()

func buildRevertSelectors() map[[4]byte]string {
	selectors := make(map[[4]byte]string, len(knownRevertErrors))
	for _, sig := range knownRevertErrors {
		hash := crypto.Keccak256([]byte(sig))
		var selector [4]byte
		copy(selector[:], hash[:4])
		name := sig[:strings.Index(sig, "(")]
		selectors[selector] = name
	}
	return selectors
}

// WriteRequest describes one state-changing contract call
type WriteRequest struct {
	Name  string
	Args  []interface{}
	From  common.Address
	Value *big.Int
}

// MintRequest builds a paid mint write
func MintRequest(from common.Address, quantity uint64, value *big.Int) WriteRequest {
	return WriteRequest{Name: CallMint, Args: []interface{}{new(big.Int).SetUint64(quantity)}, From: from, Value: value}
}

// FreeMintRequest builds a free mint write
func FreeMintRequest(from common.Address) WriteRequest {
	return WriteRequest{Name: CallFreeMint, From: from}
}

// CompositeWriteRequest builds a composite write; tokenID survives, burnID burns
func CompositeWriteRequest(from common.Address, tokenID, burnID uint64) WriteRequest {
	return WriteRequest{
		Name: CallComposite,
		Args: []interface{}{new(big.Int).SetUint64(tokenID), new(big.Int).SetUint64(burnID)},
		From: from,
	}
}

// ClaimPrizeRequest builds a prize claim write
func ClaimPrizeRequest(from common.Address, tokenID uint64) WriteRequest {
	return WriteRequest{Name: CallClaimPrize, Args: []interface{}{new(big.Int).SetUint64(tokenID)}, From: from}
}

// OwnerMintRequest builds a privileged owner mint write
func OwnerMintRequest(from common.Address, to common.Address) WriteRequest {
	return WriteRequest{Name: CallOwnerMint, Args: []interface{}{to}, From: from}
}

// Gateway is the single entry point for contract reads and writes.
// Every call path is pinned to the configured chain and contract.
type Gateway interface {
	// Chain returns the pinned chain
	Chain() domain.Chain

	// BalanceOf returns the number of tokens owned by an address
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)

	// TokenOfOwnerByIndex returns the token id at the given enumeration index
	TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (uint64, error)

	// TokenURI returns the raw tokenURI payload for a token
	TokenURI(ctx context.Context, tokenID uint64) (string, error)

	// IsWinningToken reports whether the token currently matches the winning color
	IsWinningToken(ctx context.Context, tokenID uint64) (bool, error)

	// HasUsedFreeMint reports whether an address already consumed its free mint
	HasUsedFreeMint(ctx context.Context, account common.Address) (bool, error)

	// CurrentWinningColor returns the current winning color
	CurrentWinningColor(ctx context.Context) (string, error)

	// AvailablePrizePool returns the claimable prize pool in wei
	AvailablePrizePool(ctx context.Context) (*big.Int, error)

	// WinnerClaimPercentage returns the percentage of the pool a winner receives
	WinnerClaimPercentage(ctx context.Context) (uint64, error)

	// MintPrice returns the paid mint price in wei
	MintPrice(ctx context.Context) (*big.Int, error)

	// SimulateAndSend dry-runs the write via eth_call with the caller's From
	// before signing and submitting it. A contract revert during simulation
	// surfaces as SimulationRevertError and nothing is sent.
	SimulateAndSend(ctx context.Context, req WriteRequest, signer adapter.Signer) (*domain.TxHandle, error)
}

type gateway struct {
	chain    domain.Chain
	contract common.Address
	registry *Registry
	client   adapter.EthClient
	clock    adapter.Clock
}

// NewGateway creates a gateway bound to one chain and contract.
// The call registry is validated here; a bad ABI fragment fails startup.
func NewGateway(chain domain.Chain, contractAddress string, client adapter.EthClient, clock adapter.Clock) (Gateway, error) {
	if !domain.IsValidChain(chain) {
		return nil, fmt.Errorf("invalid chain: %s", chain)
	}
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", contractAddress)
	}

	registry, err := NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build call registry: %w", err)
	}

	return &gateway{
		chain:    chain,
		contract: common.HexToAddress(contractAddress),
		registry: registry,
		client:   client,
		clock:    clock,
	}, nil
}

func (g *gateway) Chain() domain.Chain {
	return g.chain
}

// call packs, executes, and returns the raw result of a view call
func (g *gateway) call(ctx context.Context, name string, args ...interface{}) ([]byte, error) {
	data, err := g.registry.Pack(name, args...)
	if err != nil {
		return nil, domain.NewChainReadError(name, err)
	}

	result, err := g.client.CallContract(ctx, ethereum.CallMsg{
		To:   &g.contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, domain.NewChainReadError(name, err)
	}

	return result, nil
}

func (g *gateway) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	result, err := g.call(ctx, CallBalanceOf, owner)
	if err != nil {
		return 0, err
	}

	var balance *big.Int
	if err := g.registry.Unpack(CallBalanceOf, &balance, result); err != nil {
		return 0, domain.NewChainReadError(CallBalanceOf, err)
	}

	return balance.Uint64(), nil
}

func (g *gateway) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (uint64, error) {
	result, err := g.call(ctx, CallTokenOfOwnerByIndex, owner, new(big.Int).SetUint64(index))
	if err != nil {
		return 0, err
	}

	var tokenID *big.Int
	if err := g.registry.Unpack(CallTokenOfOwnerByIndex, &tokenID, result); err != nil {
		return 0, domain.NewChainReadError(CallTokenOfOwnerByIndex, err)
	}

	return tokenID.Uint64(), nil
}

func (g *gateway) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	result, err := g.call(ctx, CallTokenURI, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return "", err
	}

	// An empty result means the token does not exist (burned or never minted)
	if len(result) == 0 {
		return "", domain.ErrTokenNotFound
	}

	var uri string
	if err := g.registry.Unpack(CallTokenURI, &uri, result); err != nil {
		return "", domain.NewChainReadError(CallTokenURI, err)
	}
	if uri == "" {
		return "", domain.ErrTokenNotFound
	}

	return uri, nil
}

func (g *gateway) IsWinningToken(ctx context.Context, tokenID uint64) (bool, error) {
	result, err := g.call(ctx, CallIsWinningToken, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return false, err
	}

	var winning bool
	if err := g.registry.Unpack(CallIsWinningToken, &winning, result); err != nil {
		return false, domain.NewChainReadError(CallIsWinningToken, err)
	}

	return winning, nil
}

func (g *gateway) HasUsedFreeMint(ctx context.Context, account common.Address) (bool, error) {
	result, err := g.call(ctx, CallHasUsedFreeMint, account)
	if err != nil {
		return false, err
	}

	var used bool
	if err := g.registry.Unpack(CallHasUsedFreeMint, &used, result); err != nil {
		return false, domain.NewChainReadError(CallHasUsedFreeMint, err)
	}

	return used, nil
}

func (g *gateway) CurrentWinningColor(ctx context.Context) (string, error) {
	result, err := g.call(ctx, CallCurrentWinningColor)
	if err != nil {
		return "", err
	}

	var color string
	if err := g.registry.Unpack(CallCurrentWinningColor, &color, result); err != nil {
		return "", domain.NewChainReadError(CallCurrentWinningColor, err)
	}

	return color, nil
}

func (g *gateway) AvailablePrizePool(ctx context.Context) (*big.Int, error) {
	result, err := g.call(ctx, CallAvailablePrizePool)
	if err != nil {
		return nil, err
	}

	var pool *big.Int
	if err := g.registry.Unpack(CallAvailablePrizePool, &pool, result); err != nil {
		return nil, domain.NewChainReadError(CallAvailablePrizePool, err)
	}

	return pool, nil
}

func (g *gateway) WinnerClaimPercentage(ctx context.Context) (uint64, error) {
	result, err := g.call(ctx, CallWinnerClaimPercentage)
	if err != nil {
		return 0, err
	}

	var percentage *big.Int
	if err := g.registry.Unpack(CallWinnerClaimPercentage, &percentage, result); err != nil {
		return 0, domain.NewChainReadError(CallWinnerClaimPercentage, err)
	}

	return percentage.Uint64(), nil
}

func (g *gateway) MintPrice(ctx context.Context) (*big.Int, error) {
	result, err := g.call(ctx, CallMintPrice)
	if err != nil {
		return nil, err
	}

	var price *big.Int
	if err := g.registry.Unpack(CallMintPrice, &price, result); err != nil {
		return nil, domain.NewChainReadError(CallMintPrice, err)
	}

	return price, nil
}

func (g *gateway) SimulateAndSend(ctx context.Context, req WriteRequest, signer adapter.Signer) (*domain.TxHandle, error) {
	spec, ok := g.registry.Spec(req.Name)
	if !ok {
		return nil, domain.NewChainReadError(req.Name, fmt.Errorf("unknown call"))
	}
	if spec.Mutability != MutabilityWrite {
		return nil, domain.NewChainReadError(req.Name, fmt.Errorf("call is not a write"))
	}

	data, err := g.registry.Pack(req.Name, req.Args...)
	if err != nil {
		return nil, domain.NewChainReadError(req.Name, err)
	}

	msg := ethereum.CallMsg{
		From:  req.From,
		To:    &g.contract,
		Value: req.Value,
		Data:  data,
	}

	// Dry-run before signing. A revert here means the write would fail
	// on chain, so nothing is submitted.
	if _, err := g.client.CallContract(ctx, msg, nil); err != nil {
		if reason, reverted := decodeRevertReason(err); reverted {
			logger.WarnCtx(ctx, "simulation reverted",
				zap.String("call", req.Name),
				zap.String("reason", reason),
				zap.String("from", req.From.Hex()))
			return nil, domain.NewSimulationRevertError(req.Name, reason)
		}
		return nil, domain.NewChainReadError(req.Name, err)
	}

	nonce, err := g.client.PendingNonceAt(ctx, req.From)
	if err != nil {
		return nil, domain.NewChainReadError(req.Name, err)
	}

	gasPrice, err := g.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, domain.NewChainReadError(req.Name, err)
	}

	gasLimit, err := g.client.EstimateGas(ctx, msg)
	if err != nil {
		return nil, domain.NewChainReadError(req.Name, err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &g.contract,
		Value:    req.Value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	chainID, err := g.chain.NumericChainID()
	if err != nil {
		return nil, domain.NewChainReadError(req.Name, err)
	}

	signedTx, err := signer.SignTx(tx, big.NewInt(chainID))
	if err != nil {
		// A declined signature is an ordinary failure, not an infra error
		if errors.Is(err, domain.ErrUserRejected) {
			return nil, domain.ErrUserRejected
		}
		return nil, fmt.Errorf("failed to sign %s transaction: %w", req.Name, err)
	}

	if err := g.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, domain.NewChainReadError(req.Name, err)
	}

	logger.InfoCtx(ctx, "transaction submitted",
		zap.String("call", req.Name),
		zap.String("txHash", signedTx.Hash().Hex()),
		zap.String("from", req.From.Hex()))

	return &domain.TxHandle{
		Hash:      signedTx.Hash(),
		Submitted: g.clock.Now(),
	}, nil
}

// dataError is implemented by go-ethereum RPC errors that carry revert data
type dataError interface {
	ErrorData() interface{}
}

// decodeRevertReason extracts the contract error name from a simulation
// failure. It returns ("", false) when the error is not a revert.
func decodeRevertReason(err error) (string, bool) {
	var de dataError
	if errors.As(err, &de) {
		if hexData, ok := de.ErrorData().(string); ok {
			data, decodeErr := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
			if decodeErr == nil && len(data) >= 4 {
				var selector [4]byte
				copy(selector[:], data[:4])
				if name, known := revertSelectors[selector]; known {
					return name, true
				}
				// Error(string) revert carries the message after the selector
				if reason, unpackErr := abiUnpackRevert(data); unpackErr == nil {
					return reason, true
				}
			}
		}
		return "", true
	}

	// Fall back to the error string for providers that do not expose data
	msg := err.Error()
	if idx := strings.Index(msg, "execution reverted"); idx >= 0 {
		reason := strings.TrimPrefix(msg[idx:], "execution reverted")
		reason = strings.TrimPrefix(reason, ":")
		return strings.TrimSpace(reason), true
	}

	return "", false
}

// abiUnpackRevert decodes a standard Error(string) revert payload
func abiUnpackRevert(data []byte) (string, error) {
	reason, err := abiErrorString(data)
	if err != nil {
		return "", err
	}
	return reason, nil
}

func abiErrorString(data []byte) (string, error) {
	// Error(string) selector is 0x08c379a0
	if len(data) < 4 || data[0] != 0x08 || data[1] != 0xc3 || data[2] != 0x79 || data[3] != 0xa0 {
		return "", fmt.Errorf("not an Error(string) revert")
	}
	payload := data[4:]
	if len(payload) < 64 {
		return "", fmt.Errorf("truncated revert payload")
	}
	length := new(big.Int).SetBytes(payload[32:64]).Uint64()
	if uint64(len(payload)) < 64+length {
		return "", fmt.Errorf("truncated revert payload")
	}
	return string(payload[64 : 64+length]), nil
}
