package services

import (
	"context"
	"fmt"
	"time"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/logger"
)

// ReminderLead is how long before kickoff the notification fires.
const ReminderLead = 5 * time.Minute

// Reminders toggles match reminders: one push notification per tracked
// match, five minutes before kickoff, backed by a document in the
// matchReminders collection.
type Reminders struct {
	docs      *Documents
	scheduler driven.NotificationScheduler

	now func() time.Time
}

// NewReminders creates the reminder service.
func NewReminders(docs *Documents, scheduler driven.NotificationScheduler) *Reminders {
	return &Reminders{
		docs:      docs,
		scheduler: scheduler,
		now:       time.Now,
	}
}

// Toggle arms a reminder for the event, or disarms it if one already
// exists. It reports whether a reminder is armed after the call.
//
// Arming a reminder whose trigger time is already in the past fails with
// domain.ErrInvalidInput; nothing is scheduled or stored in that case.
func (r *Reminders) Toggle(ctx context.Context, eventID, title string, kickoff time.Time) (bool, error) {
	existing, err := r.find(ctx, eventID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := r.disarm(ctx, *existing); err != nil {
			return true, err
		}
		return false, nil
	}

	trigger := kickoff.Add(-ReminderLead)
	if !trigger.After(r.now()) {
		return false, fmt.Errorf("%w: match %q starts too soon for a reminder", domain.ErrInvalidInput, title)
	}

	notificationID, err := r.scheduler.Schedule(ctx, "Match starting soon", title, trigger)
	if err != nil {
		return false, fmt.Errorf("schedule notification: %w", err)
	}

	reminder := domain.Reminder{
		EventID:        eventID,
		Title:          title,
		Kickoff:        kickoff,
		NotificationID: notificationID,
	}
	if _, err := r.docs.Upsert(ctx, domain.CollectionMatchReminders, reminder.Fields(), false); err != nil {
		// Keep scheduler and store consistent: revoke the orphaned
		// notification before reporting failure.
		if cancelErr := r.scheduler.Cancel(ctx, notificationID); cancelErr != nil {
			logger.Warn("cancel orphaned notification %s: %v", notificationID, cancelErr)
		}
		return false, err
	}

	logger.Debug("reminder armed for %q at %s", title, trigger.Format(time.RFC3339))
	return true, nil
}

// Remove disarms the reminder for the event, if one exists. Removing a
// non-existent reminder is not an error.
func (r *Reminders) Remove(ctx context.Context, eventID string) error {
	existing, err := r.find(ctx, eventID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	return r.disarm(ctx, *existing)
}

// IsArmed reports whether the event currently has a reminder.
func (r *Reminders) IsArmed(ctx context.Context, eventID string) (bool, error) {
	existing, err := r.find(ctx, eventID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// List returns every stored reminder.
func (r *Reminders) List(ctx context.Context) ([]domain.Reminder, error) {
	docs, err := r.docs.ListAll(ctx, domain.CollectionMatchReminders)
	if err != nil {
		return nil, err
	}
	reminders := make([]domain.Reminder, 0, len(docs))
	for _, doc := range docs {
		reminders = append(reminders, domain.ReminderFromFields(doc.Fields))
	}
	return reminders, nil
}

func (r *Reminders) find(ctx context.Context, eventID string) (*domain.Reminder, error) {
	reminders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, reminder := range reminders {
		if reminder.EventID == eventID {
			return &reminder, nil
		}
	}
	return nil, nil
}

func (r *Reminders) disarm(ctx context.Context, reminder domain.Reminder) error {
	if reminder.NotificationID != "" {
		if err := r.scheduler.Cancel(ctx, reminder.NotificationID); err != nil {
			logger.Warn("cancel notification %s: %v", reminder.NotificationID, err)
		}
	}
	if err := r.docs.Delete(ctx, domain.CollectionMatchReminders, reminder.ID); err != nil {
		return fmt.Errorf("remove reminder for event %s: %w", reminder.EventID, err)
	}
	return nil
}
