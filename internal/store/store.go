package store

import (
	"context"
	"time"

	"github.com/warplabs/warps-engine/internal/store/schema"
)

// PointsTotal aggregates one player's earned points
type PointsTotal struct {
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// AwardPoints records one earned-points entry
	AwardPoints(ctx context.Context, username string, points int64, reason string, awardedAt time.Time) error
	// GetPointsTotal returns the player's summed points
	GetPointsTotal(ctx context.Context, username string) (*PointsTotal, error)
	// GetLeaderboard returns the top point earners in descending order
	GetLeaderboard(ctx context.Context, limit int) ([]*PointsTotal, error)

	// SaveReferral records a referral; a duplicate pair is benign, reported
	// via the created flag
	SaveReferral(ctx context.Context, referrer, referredUser string) (bool, error)

	// SaveNotificationSubscription registers a push channel; a duplicate
	// (url, token) pair is benign
	SaveNotificationSubscription(ctx context.Context, fid uint64, url, token string) error
	// RemoveNotificationSubscriptions drops every subscription for the fid
	RemoveNotificationSubscriptions(ctx context.Context, fid uint64) error
	// GetNotificationSubscriptions returns all subscriptions grouped by
	// channel callback URL
	GetNotificationSubscriptions(ctx context.Context) (map[string][]*schema.NotificationSubscription, error)

	// MarkEventProcessed records the event id and reports whether this call
	// won the insert. A false result means the event was already handled.
	MarkEventProcessed(ctx context.Context, eventID, eventType string, payload []byte) (bool, error)
}
