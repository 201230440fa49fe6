package driven

import (
	"context"
	"time"
)

// NotificationScheduler schedules local push notifications.
// The engine persists the returned identifier alongside the originating
// reminder document so the notification can be cancelled later.
type NotificationScheduler interface {
	// Schedule arranges a notification with the given title and body at
	// the trigger instant and returns an opaque identifier.
	Schedule(ctx context.Context, title, body string, trigger time.Time) (string, error)

	// Cancel revokes a previously scheduled notification.
	// Cancelling an unknown id is not an error.
	Cancel(ctx context.Context, id string) error
}
