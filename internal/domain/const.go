package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY = "https://ipfs.io"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// TERMINAL_WARP_COUNT is the warp count at which a token can no longer
	// be combined
	TERMINAL_WARP_COUNT = "1"

	// Metadata trait names emitted by the contract
	TRAIT_WARPS = "Warps"
	TRAIT_COLOR = "Color"
)
