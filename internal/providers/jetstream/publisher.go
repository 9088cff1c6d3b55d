package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/warplabs/warps-engine/internal/adapter"
	"github.com/warplabs/warps-engine/internal/domain"
	"github.com/warplabs/warps-engine/internal/logger"
	"github.com/warplabs/warps-engine/internal/messaging"
)

// Config holds the configuration for NATS JetStream connections
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
	clock      adapter.Clock
}

// connectOptions builds the shared NATS connection options
func connectOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// subjectWildcard covers every subject buildSubject can produce
const subjectWildcard = "games.warps.>"

// NewPublisher creates a new NATS JetStream publisher and ensures the event
// stream exists
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON, clock adapter.Clock) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, connectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := js.CreateOrUpdateStream(context.Background(), natsjs.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{subjectWildcard},
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		json:       jsonAdapter,
		clock:      clock,
	}, nil
}

// PublishEvent publishes a game event to NATS JetStream, assigning a ULID
// event id when the caller did not
func (p *publisher) PublishEvent(ctx context.Context, event *domain.GameEvent) error {
	if event.EventID == "" {
		event.EventID = ulid.MustNew(ulid.Timestamp(p.clock.Now()), ulid.DefaultEntropy()).String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.clock.Now()
	}

	if !event.Valid() {
		return fmt.Errorf("refusing to publish invalid %s event %s", event.EventType, event.EventID)
	}

	logger.DebugCtx(ctx, "Publishing game event",
		zap.String("event_id", event.EventID),
		zap.String("event_type", string(event.EventType)))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := buildSubject(event)

	// The event id doubles as the broker-side dedupe key
	if _, err := p.js.Publish(ctx, subject, data, natsjs.WithMsgID(event.EventID)); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// buildSubject constructs the NATS subject for the event
// Format: games.warps.{event_type}, e.g. games.warps.composite_success
func buildSubject(event *domain.GameEvent) string {
	return fmt.Sprintf("games.warps.%s", event.EventType)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
