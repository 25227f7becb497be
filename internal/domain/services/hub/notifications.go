package hub

import "devcloud/internal/domain/models/hub"

// NotificationRecorder is the append-only activity log
type NotificationRecorder interface {
	// Record appends a notification and returns it
	Record(message string, kind hub.NotificationType) hub.Notification

	// List returns all notifications, newest first
	List() []hub.Notification

	// UnreadCount returns the number of unread notifications
	UnreadCount() int

	// MarkAllRead flips every notification to read
	MarkAllRead()

	// Subscribe returns a channel receiving every new notification.
	// The caller must call Unsubscribe when done.
	Subscribe() chan hub.Notification

	// Unsubscribe removes a subscriber and closes its channel
	Unsubscribe(ch chan hub.Notification)
}
