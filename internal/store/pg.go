package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/warplabs/warps-engine/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. It accesses the underlying *sql.DB and sets the pool
// configuration. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// AwardPoints records one earned-points entry
func (s *pgStore) AwardPoints(ctx context.Context, username string, points int64, reason string, awardedAt time.Time) error {
	award := schema.PointAward{
		Username:  username,
		Points:    points,
		Reason:    reason,
		AwardedAt: awardedAt,
	}

	if err := s.db.WithContext(ctx).Create(&award).Error; err != nil {
		return fmt.Errorf("failed to award points: %w", err)
	}

	return nil
}

// GetPointsTotal returns the player's summed points
func (s *pgStore) GetPointsTotal(ctx context.Context, username string) (*PointsTotal, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.PointAward{}).
		Where("username = ?", username).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get points total: %w", err)
	}

	return &PointsTotal{Username: username, Points: total}, nil
}

// GetLeaderboard returns the top point earners in descending order
func (s *pgStore) GetLeaderboard(ctx context.Context, limit int) ([]*PointsTotal, error) {
	if limit <= 0 {
		limit = 10
	}

	var totals []*PointsTotal
	err := s.db.WithContext(ctx).
		Model(&schema.PointAward{}).
		Select("username, SUM(points) AS points").
		Group("username").
		Order("points DESC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return totals, nil
}

// SaveReferral records a referral pair. The unique constraint absorbs
// duplicates; the created flag reports whether this call inserted the row.
func (s *pgStore) SaveReferral(ctx context.Context, referrer, referredUser string) (bool, error) {
	referral := schema.Referral{
		Referrer:     referrer,
		ReferredUser: referredUser,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "referrer"}, {Name: "referred_user"}},
		DoNothing: true,
	}).Create(&referral)
	if result.Error != nil {
		return false, fmt.Errorf("failed to save referral: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// SaveNotificationSubscription registers a push channel; duplicate
// (url, token) pairs are benign
func (s *pgStore) SaveNotificationSubscription(ctx context.Context, fid uint64, url, token string) error {
	subscription := schema.NotificationSubscription{
		FID:   fid,
		URL:   url,
		Token: token,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}, {Name: "token"}},
		DoNothing: true,
	}).Create(&subscription).Error
	if err != nil {
		return fmt.Errorf("failed to save notification subscription: %w", err)
	}

	return nil
}

// RemoveNotificationSubscriptions drops every subscription for the fid
func (s *pgStore) RemoveNotificationSubscriptions(ctx context.Context, fid uint64) error {
	err := s.db.WithContext(ctx).
		Where("fid = ?", fid).
		Delete(&schema.NotificationSubscription{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove notification subscriptions: %w", err)
	}

	return nil
}

// GetNotificationSubscriptions returns all subscriptions grouped by channel
// callback URL. The broadcaster fans out per group and batches within one.
func (s *pgStore) GetNotificationSubscriptions(ctx context.Context) (map[string][]*schema.NotificationSubscription, error) {
	var subscriptions []*schema.NotificationSubscription
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get notification subscriptions: %w", err)
	}

	grouped := make(map[string][]*schema.NotificationSubscription)
	for _, subscription := range subscriptions {
		grouped[subscription.URL] = append(grouped[subscription.URL], subscription)
	}

	return grouped, nil
}

// MarkEventProcessed inserts the event id, reporting whether this call won.
// A lost insert means another delivery of the same event already ran.
func (s *pgStore) MarkEventProcessed(ctx context.Context, eventID, eventType string, payload []byte) (bool, error) {
	processed := schema.ProcessedEvent{
		EventID:   eventID,
		EventType: eventType,
		Payload:   datatypes.JSON(payload),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&processed)
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark event processed: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
