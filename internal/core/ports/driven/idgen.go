package driven

// IDGenerator assigns new document identifiers. Decoupled from the store
// client so id assignment is testable without the remote store.
type IDGenerator interface {
	// NewID returns a fresh unique identifier.
	NewID() string
}
