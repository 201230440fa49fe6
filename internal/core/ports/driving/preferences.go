package driving

import "github.com/w3labs/sportsync/internal/core/domain"

// PreferenceFeed exposes the live, auth-bound view of the user's tracked
// collections. Snapshots are authoritative: a caller must not assume a
// write it just issued is reflected in the very next snapshot.
type PreferenceFeed interface {
	// Snapshot returns the latest published documents for a tracked
	// collection. Empty between sessions.
	Snapshot(collection string) []domain.Document

	// Ready reports whether every tracked collection has delivered its
	// first snapshot since login (or the grace period has elapsed).
	Ready() bool

	// SubscribeErrors registers a listener for subscription transport
	// errors. Returns a cancel function.
	SubscribeErrors(listener func(collection string, err error)) (cancel func())
}
