package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ProcessedEvent represents the processed_events table. The unique event id
// gives consumers exactly-once effects under at-least-once delivery.
type ProcessedEvent struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the ULID assigned at publish time
	EventID string `gorm:"column:event_id;not null;unique;type:varchar(26)"`
	// EventType records which game event this delivery carried
	EventType string `gorm:"column:event_type;not null;type:varchar(64)"`
	// Payload is the raw event body, kept for auditing
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb"`
	// ProcessedAt is when the consumer finished handling the event
	ProcessedAt time.Time `gorm:"column:processed_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ProcessedEvent model
func (ProcessedEvent) TableName() string {
	return "processed_events"
}
