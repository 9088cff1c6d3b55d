package schema

import "time"

// NotificationSubscription represents the notification_subscriptions table -
// one push channel registration per (url, token) pair
type NotificationSubscription struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// FID is the subscriber's Farcaster id
	FID uint64 `gorm:"column:fid;not null;index"`
	// URL is the channel callback endpoint notifications are POSTed to
	URL string `gorm:"column:url;not null;uniqueIndex:idx_subscriptions_url_token;type:text"`
	// Token is the opaque per-device push token
	Token string `gorm:"column:token;not null;uniqueIndex:idx_subscriptions_url_token;type:text"`
	// CreatedAt is the timestamp when this subscription was stored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NotificationSubscription model
func (NotificationSubscription) TableName() string {
	return "notification_subscriptions"
}
