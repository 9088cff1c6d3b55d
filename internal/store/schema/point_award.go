package schema

import "time"

// PointAward represents the point_awards table - one earned-points entry per
// confirmed game action
type PointAward struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username is the player's social handle
	Username string `gorm:"column:username;not null;index;type:varchar(255)"`
	// Points is the amount awarded for this entry
	Points int64 `gorm:"column:points;not null"`
	// Reason describes the action that earned the points (mint, composite, claim, referral)
	Reason string `gorm:"column:reason;not null;type:varchar(64)"`
	// AwardedAt is when the underlying action settled
	AwardedAt time.Time `gorm:"column:awarded_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this row was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PointAward model
func (PointAward) TableName() string {
	return "point_awards"
}
