package notifier

import (
	"bytes"
	"context"
	"fmt"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/webhook"
)

// WebhookConfig holds outbound winner webhook configuration
type WebhookConfig struct {
	// URL is the delivery endpoint; empty disables outbound webhooks
	URL string
	// Secret signs each delivery
	Secret string
}

// WebhookSender delivers signed winner announcements to the configured
// endpoint
//
//go:generate mockgen -source=webhook.go -destination=../mocks/webhook_sender.go -package=mocks -mock_names=WebhookSender=MockWebhookSender
type WebhookSender interface {
	// SendWinner posts the claim event to the webhook endpoint, signed the
	// same way inbound frame webhooks are verified
	SendWinner(ctx context.Context, event *domain.GameEvent) error
}

type webhookSender struct {
	config WebhookConfig
	http   adapter.HTTPClient
	json   adapter.JSON
	clock  adapter.Clock
}

// NewWebhookSender creates the outbound winner webhook sender
func NewWebhookSender(config WebhookConfig, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, clock adapter.Clock) WebhookSender {
	return &webhookSender{
		config: config,
		http:   httpClient,
		json:   jsonAdapter,
		clock:  clock,
	}
}

// winnerPayload is the outbound webhook body for a claimed prize
type winnerPayload struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Winner    string `json:"winner"`
	TokenID   uint64 `json:"token_id"`
	TxHash    string `json:"tx_hash,omitempty"`
	Chain     string `json:"chain,omitempty"`
}

func (w *webhookSender) SendWinner(ctx context.Context, event *domain.GameEvent) error {
	if w.config.URL == "" {
		return nil
	}

	body, err := w.json.Marshal(winnerPayload{
		EventID:   event.EventID,
		EventType: string(event.EventType),
		Winner:    event.Winner,
		TokenID:   event.TokenID,
		TxHash:    event.TxHash,
		Chain:     string(event.Chain),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal winner payload: %w", err)
	}

	timestamp := w.clock.Now().Unix()
	headers := map[string]string{
		"X-Warps-Signature": webhook.Sign(w.config.Secret, timestamp, event.EventID, body),
		"X-Warps-Timestamp": fmt.Sprintf("%d", timestamp),
	}

	if _, err := w.http.PostWithHeaders(ctx, w.config.URL, "application/json", headers, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("failed to deliver winner webhook: %w", err)
	}

	return nil
}
