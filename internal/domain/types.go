package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainBaseMainnet Chain = "eip155:8453"
	ChainBaseSepolia Chain = "eip155:84532"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainBaseMainnet || chain == ChainBaseSepolia
}

// NumericChainID returns the EIP-155 numeric chain id for transaction signing
func (c Chain) NumericChainID() (int64, error) {
	parts := strings.Split(string(c), ":")
	if len(parts) != 2 || parts[0] != "eip155" {
		return 0, fmt.Errorf("unsupported chain: %s", c)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unsupported chain: %s", c)
	}
	return id, nil
}

// ChainForEnvironment resolves the target chain from the deployment
// environment. The game pins one chain per deployment; it never follows
// whatever network a caller happens to be connected to.
func ChainForEnvironment(environment string) Chain {
	if environment == "development" {
		return ChainBaseSepolia
	}
	return ChainBaseMainnet
}

// TokenAttribute is a single named trait decoded from on-chain metadata
type TokenAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata is the decoded tokenURI payload
type TokenMetadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Image       string           `json:"image"`
	Attributes  []TokenAttribute `json:"attributes"`
}

// Attribute returns the value of the named trait, or empty string when absent
func (m *TokenMetadata) Attribute(traitType string) string {
	for _, attr := range m.Attributes {
		if attr.TraitType == traitType {
			return attr.Value
		}
	}
	return ""
}

// Token represents one owned game asset with its decoded metadata
type Token struct {
	// ID is assigned by the contract at mint time and stable until burn
	ID uint64 `json:"id"`
	// WarpCount is the string-encoded composite depth from metadata
	WarpCount string `json:"warp_count"`
	// Color is the token's current display color trait
	Color string `json:"color"`
	// IsWinning reflects the contract's comparison against the current
	// winning color at read time; it can flip when the winning color rotates
	IsWinning bool `json:"is_winning"`
	// Metadata is the full decoded tokenURI payload
	Metadata TokenMetadata `json:"metadata"`
	// MetadataHash is a canonical digest of Metadata. Clients compare it
	// across refetches to detect attribute changes without diffing payloads.
	MetadataHash string `json:"metadata_hash,omitempty"`
}

// WarpCountValue parses the warp count from metadata
func (t *Token) WarpCountValue() (uint64, error) {
	n, err := strconv.ParseUint(t.WarpCount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid warp count %q for token %d: %w", t.WarpCount, t.ID, err)
	}
	return n, nil
}

// IsTerminal reports whether the token reached the single-warp state and can
// no longer be combined
func (t *Token) IsTerminal() bool {
	return t.WarpCount == TERMINAL_WARP_COUNT
}

// PairKey identifies an unordered composite pair. At most one composite
// request may be in flight per key at any time.
type PairKey string

// NewPairKey normalizes (a, b) so that both orderings produce the same key
func NewPairKey(a, b uint64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey(fmt.Sprintf("%d:%d", a, b))
}

// CompositeRequest is a request to merge two tokens. On success SourceID
// survives with evolved attributes and TargetID is burned.
type CompositeRequest struct {
	SourceID uint64 `json:"source_id"`
	TargetID uint64 `json:"target_id"`
}

// Key returns the unordered pair key used for in-flight deduplication
func (r CompositeRequest) Key() PairKey {
	return NewPairKey(r.SourceID, r.TargetID)
}

// FailureReason classifies why a transaction settled unsuccessfully
type FailureReason string

const (
	FailureUserRejected FailureReason = "user_rejected"
	FailureReverted     FailureReason = "reverted"
	FailureDropped      FailureReason = "dropped"
	FailureTimedOut     FailureReason = "timed_out"
)

// TxHandle is an opaque reference to a submitted on-chain transaction
type TxHandle struct {
	Hash      common.Hash `json:"hash"`
	Submitted time.Time   `json:"submitted"`
}

// Settled is the single terminal outcome for a transaction handle
type Settled struct {
	Success bool
	Receipt *types.Receipt
	Reason  FailureReason
}

// GameEventType represents the type of confirmed game state transition
type GameEventType string

const (
	GameEventMintSuccess      GameEventType = "mint_success"
	GameEventCompositeSuccess GameEventType = "composite_success"
	GameEventClaimSuccess     GameEventType = "claim_success"
)

// GameEvent represents a normalized confirmed state transition
// This is the standard format published to NATS
type GameEvent struct {
	EventID       string        `json:"event_id"`        // ULID, dedupe key on the consumer side
	EventType     GameEventType `json:"event_type"`      // mint_success, composite_success, claim_success
	Chain         Chain         `json:"chain"`           // e.g., "eip155:8453"
	TokenID       uint64        `json:"token_id"`        // surviving/minted/claiming token
	BurnedTokenID uint64        `json:"burned_token_id,omitempty"` // composite events only
	Actor         string        `json:"actor,omitempty"`           // address whose transaction confirmed
	Winner        string        `json:"winner,omitempty"`          // claiming address, claim events only
	TxHash        string        `json:"tx_hash"`         // confirming transaction hash
	Timestamp     time.Time     `json:"timestamp"`       // settlement time
}

// Valid checks structural integrity before publishing
func (e *GameEvent) Valid() bool {
	if e.EventID == "" || e.TxHash == "" {
		return false
	}
	if !IsValidChain(e.Chain) {
		return false
	}

	// Validate different fields based on event type
	switch e.EventType {
	case GameEventMintSuccess:
		return e.TokenID > 0
	case GameEventCompositeSuccess:
		return e.TokenID > 0 && e.BurnedTokenID > 0 && e.TokenID != e.BurnedTokenID
	case GameEventClaimSuccess:
		return e.TokenID > 0 && e.Winner != "" && common.IsHexAddress(e.Winner)
	default:
		return false
	}
}

// NormalizeAddress normalizes an address to the checksummed format
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") {
		return common.HexToAddress(address).String()
	}
	return address
}

// TruncateAddress shortens a hex address for display (0x1234...abcd)
func TruncateAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
