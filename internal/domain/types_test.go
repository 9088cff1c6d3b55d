package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidChain(t *testing.T) {
	tests := []struct {
		name     string
		chain    Chain
		expected bool
	}{
		{
			name:     "valid base mainnet",
			chain:    ChainBaseMainnet,
			expected: true,
		},
		{
			name:     "valid base sepolia",
			chain:    ChainBaseSepolia,
			expected: true,
		},
		{
			name:     "invalid empty chain",
			chain:    Chain(""),
			expected: false,
		},
		{
			name:     "invalid random chain",
			chain:    Chain("invalid:chain"),
			expected: false,
		},
		{
			name:     "invalid ethereum mainnet",
			chain:    Chain("eip155:1"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidChain(tt.chain)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestChain_NumericChainID(t *testing.T) {
	tests := []struct {
		name        string
		chain       Chain
		expected    int64
		expectError bool
	}{
		{
			name:     "base mainnet",
			chain:    ChainBaseMainnet,
			expected: 8453,
		},
		{
			name:     "base sepolia",
			chain:    ChainBaseSepolia,
			expected: 84532,
		},
		{
			name:        "not eip155",
			chain:       Chain("tezos:mainnet"),
			expectError: true,
		},
		{
			name:        "non-numeric id",
			chain:       Chain("eip155:abc"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.chain.NumericChainID()
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestChainForEnvironment(t *testing.T) {
	assert.Equal(t, ChainBaseSepolia, ChainForEnvironment("development"))
	assert.Equal(t, ChainBaseMainnet, ChainForEnvironment("production"))
	assert.Equal(t, ChainBaseMainnet, ChainForEnvironment(""))
}

func TestToken_WarpCountValue(t *testing.T) {
	tests := []struct {
		name        string
		token       Token
		expected    uint64
		expectError bool
	}{
		{
			name:     "valid warp count",
			token:    Token{ID: 1, WarpCount: "64"},
			expected: 64,
		},
		{
			name:     "terminal warp count",
			token:    Token{ID: 2, WarpCount: "1"},
			expected: 1,
		},
		{
			name:        "malformed warp count",
			token:       Token{ID: 3, WarpCount: "abc"},
			expectError: true,
		},
		{
			name:        "empty warp count",
			token:       Token{ID: 4, WarpCount: ""},
			expectError: true,
		},
		{
			name:        "negative warp count",
			token:       Token{ID: 5, WarpCount: "-2"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.token.WarpCountValue()
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestToken_IsTerminal(t *testing.T) {
	assert.True(t, (&Token{WarpCount: "1"}).IsTerminal())
	assert.False(t, (&Token{WarpCount: "2"}).IsTerminal())
	assert.False(t, (&Token{WarpCount: "16"}).IsTerminal())
	assert.False(t, (&Token{WarpCount: ""}).IsTerminal())
}

func TestNewPairKey(t *testing.T) {
	tests := []struct {
		name     string
		a        uint64
		b        uint64
		expected PairKey
	}{
		{
			name:     "ascending order",
			a:        3,
			b:        7,
			expected: PairKey("3:7"),
		},
		{
			name:     "descending order normalizes",
			a:        7,
			b:        3,
			expected: PairKey("3:7"),
		},
		{
			name:     "large ids",
			a:        1001,
			b:        42,
			expected: PairKey("42:1001"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewPairKey(tt.a, tt.b))
		})
	}
}

func TestCompositeRequest_Key(t *testing.T) {
	// Both orderings of the same pair must dedupe to one key
	a := CompositeRequest{SourceID: 10, TargetID: 20}
	b := CompositeRequest{SourceID: 20, TargetID: 10}
	assert.Equal(t, a.Key(), b.Key())
}

func TestTokenMetadata_Attribute(t *testing.T) {
	metadata := TokenMetadata{
		Name:  "Warps #42",
		Image: "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=",
		Attributes: []TokenAttribute{
			{TraitType: "Warps", Value: "4"},
			{TraitType: "Color", Value: "blue"},
		},
	}

	assert.Equal(t, "4", metadata.Attribute("Warps"))
	assert.Equal(t, "blue", metadata.Attribute("Color"))
	assert.Equal(t, "", metadata.Attribute("Missing"))
}

func TestGameEvent_Valid(t *testing.T) {
	validWinner := "0x396343362be2A4dA1cE0C1C210945346fb82Aa49"
	now := time.Now()

	tests := []struct {
		name     string
		event    GameEvent
		expected bool
	}{
		{
			name: "valid mint event",
			event: GameEvent{
				EventID:   "01JB000000000000000000000X",
				EventType: GameEventMintSuccess,
				Chain:     ChainBaseMainnet,
				TokenID:   42,
				TxHash:    "0xabc123",
				Timestamp: now,
			},
			expected: true,
		},
		{
			name: "valid composite event",
			event: GameEvent{
				EventID:       "01JB000000000000000000000Y",
				EventType:     GameEventCompositeSuccess,
				Chain:         ChainBaseMainnet,
				TokenID:       42,
				BurnedTokenID: 43,
				TxHash:        "0xdef456",
				Timestamp:     now,
			},
			expected: true,
		},
		{
			name: "valid claim event",
			event: GameEvent{
				EventID:   "01JB000000000000000000000Z",
				EventType: GameEventClaimSuccess,
				Chain:     ChainBaseSepolia,
				TokenID:   7,
				Winner:    validWinner,
				TxHash:    "0x789abc",
				Timestamp: now,
			},
			expected: true,
		},
		{
			name: "missing event id",
			event: GameEvent{
				EventType: GameEventMintSuccess,
				Chain:     ChainBaseMainnet,
				TokenID:   42,
				TxHash:    "0xabc123",
			},
			expected: false,
		},
		{
			name: "missing tx hash",
			event: GameEvent{
				EventID:   "01JB000000000000000000000X",
				EventType: GameEventMintSuccess,
				Chain:     ChainBaseMainnet,
				TokenID:   42,
			},
			expected: false,
		},
		{
			name: "invalid chain",
			event: GameEvent{
				EventID:   "01JB000000000000000000000X",
				EventType: GameEventMintSuccess,
				Chain:     Chain("eip155:1"),
				TokenID:   42,
				TxHash:    "0xabc123",
			},
			expected: false,
		},
		{
			name: "composite without burned token",
			event: GameEvent{
				EventID:   "01JB000000000000000000000Y",
				EventType: GameEventCompositeSuccess,
				Chain:     ChainBaseMainnet,
				TokenID:   42,
				TxHash:    "0xdef456",
			},
			expected: false,
		},
		{
			name: "composite burning itself",
			event: GameEvent{
				EventID:       "01JB000000000000000000000Y",
				EventType:     GameEventCompositeSuccess,
				Chain:         ChainBaseMainnet,
				TokenID:       42,
				BurnedTokenID: 42,
				TxHash:        "0xdef456",
			},
			expected: false,
		},
		{
			name: "claim without winner",
			event: GameEvent{
				EventID:   "01JB000000000000000000000Z",
				EventType: GameEventClaimSuccess,
				Chain:     ChainBaseMainnet,
				TokenID:   7,
				TxHash:    "0x789abc",
			},
			expected: false,
		},
		{
			name: "claim with malformed winner address",
			event: GameEvent{
				EventID:   "01JB000000000000000000000Z",
				EventType: GameEventClaimSuccess,
				Chain:     ChainBaseMainnet,
				TokenID:   7,
				Winner:    "not-an-address",
				TxHash:    "0x789abc",
			},
			expected: false,
		},
		{
			name: "unknown event type",
			event: GameEvent{
				EventID:   "01JB000000000000000000000X",
				EventType: GameEventType("burn_success"),
				Chain:     ChainBaseMainnet,
				TokenID:   42,
				TxHash:    "0xabc123",
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Valid())
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
	}{
		{
			name:     "lowercase hex address gets checksummed",
			address:  "0x396343362be2a4da1ce0c1c210945346fb82aa49",
			expected: "0x396343362be2A4dA1cE0C1C210945346fb82Aa49",
		},
		{
			name:     "already checksummed address unchanged",
			address:  "0x396343362be2A4dA1cE0C1C210945346fb82Aa49",
			expected: "0x396343362be2A4dA1cE0C1C210945346fb82Aa49",
		},
		{
			name:     "non-hex address passes through",
			address:  "warps.eth",
			expected: "warps.eth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAddress(tt.address))
		})
	}
}

func TestTruncateAddress(t *testing.T) {
	assert.Equal(t,
		"0x3963...Aa49",
		TruncateAddress("0x396343362be2A4dA1cE0C1C210945346fb82Aa49"))
	assert.Equal(t, "0x1234", TruncateAddress("0x1234"))
}
