package notifier

import (
	"bytes"
	"context"
	"fmt"

	"github.com/warplabs/warps-engine/internal/adapter"
)

// CastConfig holds cast API configuration
type CastConfig struct {
	APIURL     string // Cast publish endpoint
	APIKey     string
	SignerUUID string // Signer the casts are published as
}

// castEmbed attaches a URL preview to a cast
type castEmbed struct {
	URL string `json:"url"`
}

// castRequest is the payload posted to the cast API
type castRequest struct {
	SignerUUID string      `json:"signer_uuid"`
	Text       string      `json:"text"`
	Parent     string      `json:"parent,omitempty"`
	Embeds     []castEmbed `json:"embeds,omitempty"`
}

// CastPublisher publishes casts into a Farcaster thread
//
//go:generate mockgen -source=cast.go -destination=../mocks/cast_publisher.go -package=mocks -mock_names=CastPublisher=MockCastPublisher
type CastPublisher interface {
	// PublishReply posts text as a reply to the given parent thread hash.
	// An empty embedURL publishes a plain text cast.
	PublishReply(ctx context.Context, parentHash string, text string, embedURL string) error
}

type castPublisher struct {
	config CastConfig
	http   adapter.HTTPClient
	json   adapter.JSON
}

// NewCastPublisher creates a cast publisher backed by the cast API
func NewCastPublisher(config CastConfig, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON) CastPublisher {
	return &castPublisher{
		config: config,
		http:   httpClient,
		json:   jsonAdapter,
	}
}

// PublishReply posts a reply cast with an optional embed
func (c *castPublisher) PublishReply(ctx context.Context, parentHash string, text string, embedURL string) error {
	request := castRequest{
		SignerUUID: c.config.SignerUUID,
		Text:       text,
		Parent:     parentHash,
	}
	if embedURL != "" {
		request.Embeds = []castEmbed{{URL: embedURL}}
	}

	payload, err := c.json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal cast request: %w", err)
	}

	headers := map[string]string{
		"x-api-key": c.config.APIKey,
	}

	if _, err := c.http.PostWithHeaders(ctx, c.config.APIURL, "application/json", headers, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("failed to publish cast: %w", err)
	}

	return nil
}
