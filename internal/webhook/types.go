package webhook

import "time"

// Event type constants for the inbound frame webhook
const (
	// EventTypeFrameAdded is fired when a user adds the mini app
	EventTypeFrameAdded = "frame_added"

	// EventTypeFrameRemoved is fired when a user removes the mini app
	EventTypeFrameRemoved = "frame_removed"

	// EventTypeNotificationsEnabled is fired when a user turns push
	// notifications on; the payload carries the channel url and token
	EventTypeNotificationsEnabled = "notifications_enabled"

	// EventTypeNotificationsDisabled is fired when a user turns push
	// notifications off
	EventTypeNotificationsDisabled = "notifications_disabled"
)

// NotificationDetails carries the push channel registration delivered with
// frame_added and notifications_enabled events
type NotificationDetails struct {
	// URL is the channel callback endpoint notifications are POSTed to
	URL string `json:"url"`
	// Token is the opaque per-device push token
	Token string `json:"token"`
}

// FrameEvent represents one inbound frame webhook delivery
type FrameEvent struct {
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `json:"event_id"`
	// EventType is the frame lifecycle event type
	EventType string `json:"event_type"`
	// FID is the Farcaster id of the user the event concerns
	FID uint64 `json:"fid"`
	// Timestamp is when the event was generated
	Timestamp time.Time `json:"timestamp"`
	// NotificationDetails is present for frame_added and
	// notifications_enabled events
	NotificationDetails *NotificationDetails `json:"notification_details,omitempty"`
}
