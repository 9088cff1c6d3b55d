package chain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Mutability classifies a contract capability
type Mutability string

const (
	MutabilityView  Mutability = "view"
	MutabilityWrite Mutability = "write"
)

// Call names for every contract capability the engine uses
const (
	CallBalanceOf             = "balanceOf"
	CallTokenOfOwnerByIndex   = "tokenOfOwnerByIndex"
	CallTokenURI              = "tokenURI"
	CallIsWinningToken        = "isWinningToken"
	CallHasUsedFreeMint       = "hasUsedFreeMint"
	CallCurrentWinningColor   = "currentWinningColor"
	CallAvailablePrizePool    = "availablePrizePool"
	CallWinnerClaimPercentage = "winnerClaimPercentage"
	CallMintPrice             = "mintPrice"
	CallMint                  = "mint"
	CallFreeMint              = "freeMint"
	CallComposite             = "composite"
	CallClaimPrize            = "claimPrize"
	CallOwnerMint             = "ownerMint"
)

// CallSpec declares one contract capability: its name, the single-function
// ABI fragment that describes it, and whether it mutates state
type CallSpec struct {
	Name       string
	Fragment   string
	Mutability Mutability
}

// callSpecs is the full set of contract capabilities. Every fragment is
// parsed and validated once at registry construction, never per call.
var callSpecs = []CallSpec{
	{
		Name:       CallBalanceOf,
		Fragment:   `[{"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallTokenOfOwnerByIndex,
		Fragment:   `[{"inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"name":"tokenOfOwnerByIndex","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallTokenURI,
		Fragment:   `[{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallIsWinningToken,
		Fragment:   `[{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"isWinningToken","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallHasUsedFreeMint,
		Fragment:   `[{"inputs":[{"name":"account","type":"address"}],"name":"hasUsedFreeMint","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallCurrentWinningColor,
		Fragment:   `[{"inputs":[],"name":"currentWinningColor","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallAvailablePrizePool,
		Fragment:   `[{"inputs":[],"name":"availablePrizePool","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallWinnerClaimPercentage,
		Fragment:   `[{"inputs":[],"name":"winnerClaimPercentage","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallMintPrice,
		Fragment:   `[{"inputs":[],"name":"mintPrice","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`,
		Mutability: MutabilityView,
	},
	{
		Name:       CallMint,
		Fragment:   `[{"inputs":[{"name":"quantity","type":"uint256"}],"name":"mint","outputs":[],"stateMutability":"payable","type":"function"}]`,
		Mutability: MutabilityWrite,
	},
	{
		Name:       CallFreeMint,
		Fragment:   `[{"inputs":[],"name":"freeMint","outputs":[],"stateMutability":"nonpayable","type":"function"}]`,
		Mutability: MutabilityWrite,
	},
	{
		Name:       CallComposite,
		Fragment:   `[{"inputs":[{"name":"tokenId","type":"uint256"},{"name":"burnId","type":"uint256"}],"name":"composite","outputs":[],"stateMutability":"nonpayable","type":"function"}]`,
		Mutability: MutabilityWrite,
	},
	{
		Name:       CallClaimPrize,
		Fragment:   `[{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"claimPrize","outputs":[],"stateMutability":"nonpayable","type":"function"}]`,
		Mutability: MutabilityWrite,
	},
	{
		Name:       CallOwnerMint,
		Fragment:   `[{"inputs":[{"name":"to","type":"address"}],"name":"ownerMint","outputs":[],"stateMutability":"nonpayable","type":"function"}]`,
		Mutability: MutabilityWrite,
	},
}

// Registry holds the parsed ABI for every declared contract capability
type Registry struct {
	specs map[string]CallSpec
	abis  map[string]abi.ABI
}

// NewRegistry parses and validates every call spec. A malformed fragment or a
// fragment whose method name disagrees with the spec name fails construction.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		specs: make(map[string]CallSpec, len(callSpecs)),
		abis:  make(map[string]abi.ABI, len(callSpecs)),
	}

	for _, spec := range callSpecs {
		if _, exists := r.specs[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate call spec: %s", spec.Name)
		}

		parsed, err := abi.JSON(strings.NewReader(spec.Fragment))
		if err != nil {
			return nil, fmt.Errorf("failed to parse ABI fragment for %s: %w", spec.Name, err)
		}

		method, ok := parsed.Methods[spec.Name]
		if !ok {
			return nil, fmt.Errorf("ABI fragment for %s does not declare method %s", spec.Name, spec.Name)
		}

		// The declared mutability must agree with the fragment
		isView := method.StateMutability == "view" || method.StateMutability == "pure"
		if isView != (spec.Mutability == MutabilityView) {
			return nil, fmt.Errorf("mutability mismatch for %s: fragment says %s, spec says %s",
				spec.Name, method.StateMutability, spec.Mutability)
		}

		r.specs[spec.Name] = spec
		r.abis[spec.Name] = parsed
	}

	return r, nil
}

// Spec returns the call spec for a capability name
func (r *Registry) Spec(name string) (CallSpec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Pack encodes a call to the named capability
func (r *Registry) Pack(name string, args ...interface{}) ([]byte, error) {
	parsed, ok := r.abis[name]
	if !ok {
		return nil, fmt.Errorf("unknown call: %s", name)
	}

	data, err := parsed.Pack(name, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", name, err)
	}

	return data, nil
}

// Unpack decodes the result of the named capability into out
func (r *Registry) Unpack(name string, out interface{}, data []byte) error {
	parsed, ok := r.abis[name]
	if !ok {
		return fmt.Errorf("unknown call: %s", name)
	}

	if err := parsed.UnpackIntoInterface(out, name, data); err != nil {
		return fmt.Errorf("failed to unpack %s: %w", name, err)
	}

	return nil
}
