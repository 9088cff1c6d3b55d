package schema

import "time"

// Referral represents the referrals table. The unique pair constraint makes
// duplicate inserts benign.
type Referral struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Referrer is the handle of the user who shared the game
	Referrer string `gorm:"column:referrer;not null;uniqueIndex:idx_referrals_pair;type:varchar(255)"`
	// ReferredUser is the handle of the user who joined through the referral
	ReferredUser string `gorm:"column:referred_user;not null;uniqueIndex:idx_referrals_pair;type:varchar(255)"`
	// CreatedAt is the timestamp when this referral was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Referral model
func (Referral) TableName() string {
	return "referrals"
}
