package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/w3labs/sportsync/internal/core/ports/driven"
)

// Ensure NotificationScheduler implements the interface.
var _ driven.NotificationScheduler = (*NotificationScheduler)(nil)

// ScheduledNotification records one scheduled push notification.
type ScheduledNotification struct {
	ID      string
	Title   string
	Body    string
	Trigger time.Time
}

// NotificationScheduler is an in-memory implementation of
// driven.NotificationScheduler. It records schedules and cancellations
// instead of talking to a platform notification service.
type NotificationScheduler struct {
	mu        sync.Mutex
	next      int
	scheduled map[string]ScheduledNotification
	cancelled []string
}

// NewNotificationScheduler creates a new in-memory scheduler.
func NewNotificationScheduler() *NotificationScheduler {
	return &NotificationScheduler{
		scheduled: make(map[string]ScheduledNotification),
	}
}

// Schedule records a notification and returns its opaque identifier.
func (s *NotificationScheduler) Schedule(_ context.Context, title, body string, trigger time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := fmt.Sprintf("notif-%d", s.next)
	s.scheduled[id] = ScheduledNotification{ID: id, Title: title, Body: body, Trigger: trigger}
	return id, nil
}

// Cancel revokes a scheduled notification. Unknown ids are ignored.
func (s *NotificationScheduler) Cancel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scheduled, id)
	s.cancelled = append(s.cancelled, id)
	return nil
}

// Scheduled returns the notification for id, if still scheduled. Test hook.
func (s *NotificationScheduler) Scheduled(id string) (ScheduledNotification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.scheduled[id]
	return n, ok
}

// Cancelled returns ids cancelled so far, in order. Test hook.
func (s *NotificationScheduler) Cancelled() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.cancelled))
	copy(out, s.cancelled)
	return out
}
