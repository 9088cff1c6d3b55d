package messaging

import (
	"context"

	"github.com/warplabs/warps-engine/internal/domain"
)

// EventHandler is called once per delivered game event. Returning an error
// requeues the delivery.
type EventHandler func(ctx context.Context, event *domain.GameEvent) error

// Subscriber defines the interface for consuming game events from the broker
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// Run consumes game events until the context is canceled
	Run(ctx context.Context, handler EventHandler) error

	// Close closes the connection and cleans up resources
	Close()
}
