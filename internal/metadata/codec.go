package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
)

const tokenURIPrefix = "data:application/json;base64,"

// Codec translates between the contract's inline token URI encoding and the
// decoded metadata structure
//
//go:generate mockgen -source=codec.go -destination=../mocks/metadata_codec.go -package=mocks -mock_names=Codec=MockCodec
type Codec interface {
	// Decode parses a data:application/json;base64 token URI. Malformed
	// base64 or JSON is an error, never a partial result.
	Decode(tokenURI string) (*domain.TokenMetadata, error)

	// Encode produces the inline token URI for the metadata. Encode and
	// Decode round-trip byte-for-byte.
	Encode(metadata *domain.TokenMetadata) (string, error)

	// Hash returns a canonical JSON digest of the metadata, stable across
	// key ordering, for change detection
	Hash(metadata *domain.TokenMetadata) (string, error)

	// ResolveImage rewrites ipfs:// image URIs to an HTTP gateway; inline
	// data URIs and plain URLs pass through unchanged
	ResolveImage(image string) string

	// CheckInlineImage validates that an inline base64 image's declared
	// mime type matches its content. Non-data URIs pass.
	CheckInlineImage(image string) error
}

type codec struct {
	json    adapter.JSON
	jcs     adapter.JCS
	base64  adapter.Base64
	gateway string
}

// NewCodec creates a metadata codec. An empty gateway falls back to the
// default public IPFS gateway.
func NewCodec(json adapter.JSON, jcs adapter.JCS, base64 adapter.Base64, gateway string) Codec {
	if gateway == "" {
		gateway = domain.DEFAULT_IPFS_GATEWAY
	}
	return &codec{
		json:    json,
		jcs:     jcs,
		base64:  base64,
		gateway: strings.TrimRight(gateway, "/"),
	}
}

func (c *codec) Decode(tokenURI string) (*domain.TokenMetadata, error) {
	if !strings.HasPrefix(tokenURI, tokenURIPrefix) {
		return nil, fmt.Errorf("unsupported token URI scheme: %q", truncateForError(tokenURI))
	}

	payload, err := c.base64.Decode(strings.TrimPrefix(tokenURI, tokenURIPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to decode token URI payload: %w", err)
	}

	var metadata domain.TokenMetadata
	if err := c.json.Unmarshal(payload, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse token metadata: %w", err)
	}

	return &metadata, nil
}

func (c *codec) Encode(metadata *domain.TokenMetadata) (string, error) {
	payload, err := c.json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token metadata: %w", err)
	}
	return tokenURIPrefix + c.base64.Encode(payload), nil
}

func (c *codec) Hash(metadata *domain.TokenMetadata) (string, error) {
	payload, err := c.json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token metadata: %w", err)
	}

	canonical, err := c.jcs.Transform(payload)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize token metadata: %w", err)
	}

	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}

func (c *codec) ResolveImage(image string) string {
	if !strings.HasPrefix(image, "ipfs://") {
		return image
	}
	return fmt.Sprintf("%s/ipfs/%s", c.gateway, strings.TrimPrefix(image, "ipfs://"))
}

func (c *codec) CheckInlineImage(image string) error {
	if !strings.HasPrefix(image, "data:") {
		return nil
	}

	declared, encoded, err := splitDataURI(image)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(strings.ToLower(declared), "image/") {
		return fmt.Errorf("unsupported inline image mime type: %s", declared)
	}

	data, err := c.base64.Decode(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode inline image: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("inline image is empty")
	}

	detected := mimetype.Detect(data).String()
	if !mimeTypesMatch(declared, detected) {
		return fmt.Errorf("inline image mime type mismatch: declared %s but detected %s", declared, detected)
	}

	return nil
}

// splitDataURI separates an RFC 2397 base64 data URI into its declared mime
// type and encoded payload
func splitDataURI(dataURI string) (string, string, error) {
	body := strings.TrimPrefix(dataURI, "data:")
	meta, encoded, found := strings.Cut(body, ",")
	if !found {
		return "", "", fmt.Errorf("invalid data URI: missing payload separator")
	}

	declared, base64Marker, found := strings.Cut(meta, ";")
	if !found || base64Marker != "base64" {
		return "", "", fmt.Errorf("invalid data URI: only base64 encoding is supported")
	}
	if declared == "" {
		return "", "", fmt.Errorf("invalid data URI: missing mime type")
	}

	return declared, encoded, nil
}

// mimeTypesMatch compares declared and detected mime types, tolerating case
// differences, parameters, and the image/svg vs image/svg+xml alias
func mimeTypesMatch(declared, detected string) bool {
	declared = strings.ToLower(strings.TrimSpace(declared))
	detected = strings.ToLower(strings.TrimSpace(detected))

	if declared == detected {
		return true
	}

	if (declared == "image/svg" && detected == "image/svg+xml") ||
		(declared == "image/svg+xml" && detected == "image/svg") {
		return true
	}

	declaredBase := strings.TrimSpace(strings.Split(declared, ";")[0])
	detectedBase := strings.TrimSpace(strings.Split(detected, ";")[0])

	return declaredBase == detectedBase
}

func truncateForError(s string) string {
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
