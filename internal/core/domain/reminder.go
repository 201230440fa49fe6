package domain

import "time"

// Reminder is a match reminder stored in the matchReminders collection.
// It carries the opaque identifier returned by the push-notification
// scheduler so the notification can be cancelled when the reminder is
// removed or re-armed.
type Reminder struct {
	ID             string
	EventID        string
	Title          string
	Kickoff        time.Time
	NotificationID string
}

// ReminderFromFields rebuilds a reminder from a document field map.
// Unknown or mistyped fields degrade to zero values rather than failing;
// snapshots from the store are authoritative but not trusted to be clean.
func ReminderFromFields(fields map[string]any) Reminder {
	r := Reminder{
		ID:             stringField(fields, FieldID),
		EventID:        stringField(fields, "eventId"),
		Title:          stringField(fields, "title"),
		NotificationID: stringField(fields, "notificationId"),
	}
	if raw := stringField(fields, "kickoff"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			r.Kickoff = t
		}
	}
	return r
}

// Fields renders the reminder as a document field map for upsert.
func (r Reminder) Fields() map[string]any {
	fields := map[string]any{
		"eventId":        r.EventID,
		"title":          r.Title,
		"kickoff":        r.Kickoff.UTC().Format(time.RFC3339),
		"notificationId": r.NotificationID,
	}
	if r.ID != "" {
		fields[FieldID] = r.ID
	}
	return fields
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
