package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/logger"
)

// Config holds side-effect notifier configuration
type Config struct {
	BatchSize       int           // Push tokens per delivery request
	InterBatchDelay time.Duration // Pause between batches on one channel
	WorkerPoolSize  int           // Concurrent channel deliveries
	WorkerQueueSize int
}

// Notification is one push message fanned out to subscribed clients
type Notification struct {
	NotificationID string `json:"notificationId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	TargetURL      string `json:"targetUrl"`
}

// BroadcastResult aggregates per-token delivery outcomes across all channels
type BroadcastResult struct {
	SuccessfulTokens  []string
	InvalidTokens     []string
	RateLimitedTokens []string
}

// deliveryRequest is the payload POSTed to a channel callback URL
type deliveryRequest struct {
	Notification
	Tokens []string `json:"tokens"`
}

// deliveryResponse is the per-token outcome a channel reports back
type deliveryResponse struct {
	Result struct {
		SuccessfulTokens  []string `json:"successfulTokens"`
		InvalidTokens     []string `json:"invalidTokens"`
		RateLimitedTokens []string `json:"rateLimitedTokens"`
	} `json:"result"`
}

// Broadcaster fans a notification out to push channels
//
//go:generate mockgen -source=broadcaster.go -destination=../mocks/broadcaster.go -package=mocks -mock_names=Broadcaster=MockBroadcaster
type Broadcaster interface {
	// Broadcast delivers the notification to every channel URL in tokensByURL.
	// Channels run concurrently; batches within one channel are serialized.
	Broadcast(ctx context.Context, notification Notification, tokensByURL map[string][]string) *BroadcastResult
}

type broadcaster struct {
	config Config
	http   adapter.HTTPClient
	json   adapter.JSON
	clock  adapter.Clock
}

// NewBroadcaster creates a push notification broadcaster
func NewBroadcaster(
	config Config,
	httpClient adapter.HTTPClient,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
) Broadcaster {
	return &broadcaster{
		config: config,
		http:   httpClient,
		json:   jsonAdapter,
		clock:  clock,
	}
}

// Broadcast delivers the notification to every channel concurrently
func (b *broadcaster) Broadcast(ctx context.Context, notification Notification, tokensByURL map[string][]string) *BroadcastResult {
	result := &BroadcastResult{}
	var mu sync.Mutex

	pool := pond.NewPool(b.config.WorkerPoolSize,
		pond.WithQueueSize(b.config.WorkerQueueSize),
		pond.WithContext(ctx))

	for url, tokens := range tokensByURL {
		pool.Submit(func() {
			channelResult := b.deliverToChannel(ctx, url, notification, tokens)

			mu.Lock()
			defer mu.Unlock()
			result.SuccessfulTokens = append(result.SuccessfulTokens, channelResult.SuccessfulTokens...)
			result.InvalidTokens = append(result.InvalidTokens, channelResult.InvalidTokens...)
			result.RateLimitedTokens = append(result.RateLimitedTokens, channelResult.RateLimitedTokens...)
		})
	}

	pool.StopAndWait()

	return result
}

// deliverToChannel sends the notification to one channel URL in batches,
// pausing between batches so a busy channel is not hammered
func (b *broadcaster) deliverToChannel(ctx context.Context, url string, notification Notification, tokens []string) *BroadcastResult {
	result := &BroadcastResult{}

	for start := 0; start < len(tokens); start += b.config.BatchSize {
		if start > 0 {
			b.clock.Sleep(b.config.InterBatchDelay)
		}

		end := min(start+b.config.BatchSize, len(tokens))
		chunk := tokens[start:end]

		if err := b.deliverChunk(ctx, url, notification, chunk, result); err != nil {
			logger.WarnCtx(ctx, "Notification delivery failed",
				zap.String("url", url),
				zap.Int("tokens", len(chunk)),
				zap.Error(err))
			result.InvalidTokens = append(result.InvalidTokens, chunk...)
		}
	}

	return result
}

// deliverChunk POSTs one batch of tokens to the channel and folds the
// channel's per-token verdicts into result
func (b *broadcaster) deliverChunk(ctx context.Context, url string, notification Notification, chunk []string, result *BroadcastResult) error {
	payload, err := b.json.Marshal(deliveryRequest{
		Notification: notification,
		Tokens:       chunk,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	resp, err := b.http.PostNoRetry(ctx, url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to post notification: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnCtx(ctx, "Failed to close notification response body", zap.Error(err))
		}
	}()

	// A rate-limited channel rejects the whole batch; the tokens stay
	// deliverable and are reported for a later retry
	if resp.StatusCode == http.StatusTooManyRequests {
		result.RateLimitedTokens = append(result.RateLimitedTokens, chunk...)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read notification response: %w", err)
	}

	var parsed deliveryResponse
	if err := b.json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to decode notification response: %w", err)
	}

	result.SuccessfulTokens = append(result.SuccessfulTokens, parsed.Result.SuccessfulTokens...)
	result.InvalidTokens = append(result.InvalidTokens, parsed.Result.InvalidTokens...)
	result.RateLimitedTokens = append(result.RateLimitedTokens, parsed.Result.RateLimitedTokens...)

	return nil
}
