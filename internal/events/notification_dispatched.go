package events

import "time"

const NotificationDispatchedTopic = "wfm.notification.dispatched.v1"

type NotificationDispatchedEvent struct {
	EventType      string    `json:"event_type"`
	NotificationID string    `json:"notification_id"`
	RecipientID    string    `json:"recipient_id"`
	Title          string    `json:"title"`
	OccurredAt     time.Time `json:"occurred_at"`
}
