package domain

import "time"

// Field names every stored document carries in its field map.
// The id is duplicated into the body so an exported document can be
// re-imported without relying on store metadata.
const (
	FieldID        = "id"
	FieldOwnerID   = "ownerId"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Document represents a record inside a named collection scoped to one owner.
type Document struct {
	// ID is unique within (OwnerID, collection).
	ID string

	// OwnerID is the uid of the authenticated user that owns the document.
	OwnerID string

	// Fields holds the document body. It always contains the id under
	// FieldID for export portability.
	Fields map[string]any

	// CreatedAt is when the document was first written.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every write.
	UpdatedAt time.Time
}

// Clone returns a deep-enough copy for snapshot delivery: the field map is
// copied so subscribers cannot mutate store state through a snapshot.
func (d Document) Clone() Document {
	fields := make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}
	d.Fields = fields
	return d
}

// BackupBundle maps collection names to their exported documents.
// Only non-empty collections are present after an export.
type BackupBundle map[string][]Document

// Tracked collections receive a live subscription for the duration of an
// authenticated session.
const (
	CollectionFavoriteLeagues = "favoriteLeagues"
	CollectionFavoriteTeams   = "favoriteTeams"
	CollectionMatchReminders  = "matchReminders"
)

// Additional collections included in a full backup.
const (
	CollectionUserSettings      = "userSettings"
	CollectionFavoritePlayers   = "favoritePlayers"
	CollectionCustomScoreboards = "customScoreboards"
	CollectionAppMetadata       = "appMetadata"
	CollectionPrivate           = "private"
)

// TrackedCollections returns the collections the subscription manager opens
// a listener for on login. Order is stable for deterministic teardown.
func TrackedCollections() []string {
	return []string{
		CollectionFavoriteLeagues,
		CollectionFavoriteTeams,
		CollectionMatchReminders,
	}
}

// BackupCollections returns the collections included in a full export.
func BackupCollections() []string {
	return []string{
		CollectionUserSettings,
		CollectionFavoriteLeagues,
		CollectionFavoriteTeams,
		CollectionFavoritePlayers,
		CollectionMatchReminders,
		CollectionCustomScoreboards,
	}
}
