package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/store"
)

// DispatcherConfig holds side-effect dispatcher configuration
type DispatcherConfig struct {
	// FrameURL is the mini app URL notifications and cast embeds point at
	FrameURL string
}

// Dispatcher turns confirmed game events into their external side effects:
// push broadcasts, winner casts, and points awards. The processed-events
// table makes each event's side effects exactly-once under redelivery.
type Dispatcher struct {
	config      DispatcherConfig
	store       store.Store
	broadcaster Broadcaster
	casts       CastPublisher
	points      PointsLedger
	webhooks    WebhookSender
	json        adapter.JSON
}

// NewDispatcher creates a side-effect dispatcher
func NewDispatcher(
	config DispatcherConfig,
	st store.Store,
	broadcaster Broadcaster,
	casts CastPublisher,
	points PointsLedger,
	webhooks WebhookSender,
	jsonAdapter adapter.JSON,
) *Dispatcher {
	return &Dispatcher{
		config:      config,
		store:       st,
		broadcaster: broadcaster,
		casts:       casts,
		points:      points,
		webhooks:    webhooks,
		json:        jsonAdapter,
	}
}

// Handle processes one consumed game event. A returned error requests
// redelivery; side-effect failures after the event is claimed are logged
// and swallowed so redelivery cannot double them.
func (d *Dispatcher) Handle(ctx context.Context, event *domain.GameEvent) error {
	payload, err := d.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventID, err)
	}

	won, err := d.store.MarkEventProcessed(ctx, event.EventID, string(event.EventType), payload)
	if err != nil {
		return fmt.Errorf("failed to mark event %s processed: %w", event.EventID, err)
	}
	if !won {
		logger.InfoCtx(ctx, "Skipping already processed event",
			zap.String("event_id", event.EventID),
			zap.String("event_type", string(event.EventType)))
		return nil
	}

	d.dispatch(ctx, event)
	return nil
}

// dispatch fires the per-type side effects, best effort
func (d *Dispatcher) dispatch(ctx context.Context, event *domain.GameEvent) {
	switch event.EventType {
	case domain.GameEventMintSuccess:
		d.broadcast(ctx, event, "A new warp appeared",
			fmt.Sprintf("Token #%d just entered the game.", event.TokenID))
		d.awardActorPoints(ctx, event, ReasonMint)

	case domain.GameEventCompositeSuccess:
		d.broadcast(ctx, event, "Warps composited",
			fmt.Sprintf("Token #%d absorbed token #%d.", event.TokenID, event.BurnedTokenID))
		d.awardActorPoints(ctx, event, ReasonComposite)

	case domain.GameEventClaimSuccess:
		d.broadcast(ctx, event, "The prize has been claimed",
			fmt.Sprintf("%s claimed the pool with token #%d.",
				domain.TruncateAddress(event.Winner), event.TokenID))
		d.publishWinnerCast(ctx, event)
		d.awardWinnerPoints(ctx, event)
		d.sendWinnerWebhook(ctx, event)

	default:
		logger.WarnCtx(ctx, "Ignoring event with unknown type",
			zap.String("event_id", event.EventID),
			zap.String("event_type", string(event.EventType)))
	}
}

// broadcast pushes one notification to every subscribed client
func (d *Dispatcher) broadcast(ctx context.Context, event *domain.GameEvent, title, body string) {
	tokensByURL, err := d.subscriptionTokens(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load notification subscriptions",
			zap.String("event_id", event.EventID),
			zap.Error(err))
		return
	}
	if len(tokensByURL) == 0 {
		return
	}

	result := d.broadcaster.Broadcast(ctx, Notification{
		NotificationID: uuid.NewString(),
		Title:          title,
		Body:           body,
		TargetURL:      d.config.FrameURL,
	}, tokensByURL)

	logger.InfoCtx(ctx, "Broadcast dispatched",
		zap.String("event_id", event.EventID),
		zap.Int("successful", len(result.SuccessfulTokens)),
		zap.Int("invalid", len(result.InvalidTokens)),
		zap.Int("rate_limited", len(result.RateLimitedTokens)))
}

// subscriptionTokens flattens stored subscriptions into push tokens per
// channel URL
func (d *Dispatcher) subscriptionTokens(ctx context.Context) (map[string][]string, error) {
	grouped, err := d.store.GetNotificationSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	tokensByURL := make(map[string][]string, len(grouped))
	for url, subscriptions := range grouped {
		tokens := make([]string, 0, len(subscriptions))
		for _, subscription := range subscriptions {
			tokens = append(tokens, subscription.Token)
		}
		tokensByURL[url] = tokens
	}

	return tokensByURL, nil
}

// publishWinnerCast announces the claim on the social feed
func (d *Dispatcher) publishWinnerCast(ctx context.Context, event *domain.GameEvent) {
	text := fmt.Sprintf("%s claimed the prize pool with warp #%d!",
		domain.TruncateAddress(event.Winner), event.TokenID)

	if err := d.casts.PublishReply(ctx, "", text, d.config.FrameURL); err != nil {
		logger.WarnCtx(ctx, "Failed to publish winner cast",
			zap.String("event_id", event.EventID),
			zap.Error(err))
	}
}

// sendWinnerWebhook posts the signed claim announcement downstream
func (d *Dispatcher) sendWinnerWebhook(ctx context.Context, event *domain.GameEvent) {
	if err := d.webhooks.SendWinner(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to deliver winner webhook",
			zap.String("event_id", event.EventID),
			zap.Error(err))
	}
}

// awardActorPoints credits the address whose transaction confirmed. Events
// published before the actor field existed carry none; they get no award.
func (d *Dispatcher) awardActorPoints(ctx context.Context, event *domain.GameEvent, reason string) {
	if event.Actor == "" {
		logger.WarnCtx(ctx, "Event carries no actor, skipping points award",
			zap.String("event_id", event.EventID),
			zap.String("event_type", string(event.EventType)))
		return
	}

	username := domain.NormalizeAddress(event.Actor)
	if err := d.points.Award(ctx, username, reason); err != nil {
		logger.WarnCtx(ctx, "Failed to award points",
			zap.String("event_id", event.EventID),
			zap.String("reason", reason),
			zap.String("actor", username),
			zap.Error(err))
	}
}

// awardWinnerPoints credits the claiming address
func (d *Dispatcher) awardWinnerPoints(ctx context.Context, event *domain.GameEvent) {
	username := domain.NormalizeAddress(event.Winner)

	if err := d.points.Award(ctx, username, ReasonClaim); err != nil {
		logger.WarnCtx(ctx, "Failed to award claim points",
			zap.String("event_id", event.EventID),
			zap.String("winner", username),
			zap.Error(err))
	}
}
