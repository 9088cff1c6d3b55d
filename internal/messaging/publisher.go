package messaging

import (
	"context"

	"github.com/warplabs/warps-engine/internal/domain"
)

// Publisher defines the interface for publishing game events to the broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a confirmed game event. The event must already
	// be settled on chain; publishing never precedes settlement.
	PublishEvent(ctx context.Context, event *domain.GameEvent) error
	// Close closes the connection
	Close()
}
