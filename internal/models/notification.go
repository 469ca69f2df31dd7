// ABOUTME: Notification model: locally stored alerts awaiting display.
// ABOUTME: Delivery to the device notification system is out of scope.
package models

import "time"

// NotificationKind is the event category a notification announces.
type NotificationKind string

const (
	NotificationGoalAchieved NotificationKind = "goal_achieved"
)

// Notification is one row of the local alert feed.
type Notification struct {
	ID        int64
	UserID    string
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
	Read      bool
}

// NewNotification creates an unread notification timestamped now.
func NewNotification(userID string, kind NotificationKind, message string) *Notification {
	return &Notification{
		UserID:    userID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
