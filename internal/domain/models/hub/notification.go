package hub

import "time"

// NotificationType is the severity shown next to a notification
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyInfo    NotificationType = "info"
	NotifyWarning NotificationType = "warning"
)

// Notification is an entry in the append-only activity log
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}
