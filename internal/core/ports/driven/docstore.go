package driven

import (
	"context"

	"github.com/w3labs/sportsync/internal/core/domain"
)

// SnapshotFunc receives the full current document list of a collection on
// every change. Deliveries within one collection arrive in store order;
// no ordering holds across collections or against in-flight writes.
type SnapshotFunc func(docs []domain.Document)

// ErrorFunc receives transport errors from a live subscription.
// The stream continues after delivery.
type ErrorFunc func(err error)

// DocumentStore is the remote, hierarchical document persistence service,
// organized as owners/{ownerID}/{collection}/{documentID}.
type DocumentStore interface {
	// List returns a snapshot of all documents in the owner's collection.
	List(ctx context.Context, ownerID, collection string) ([]domain.Document, error)

	// Set writes a full document at (ownerID, collection, doc.ID),
	// creating or replacing it.
	Set(ctx context.Context, ownerID, collection string, doc domain.Document) error

	// Update merges fields onto an existing document. The server assigns
	// the updatedAt audit timestamp.
	Update(ctx context.Context, ownerID, collection string, doc domain.Document) error

	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, ownerID, collection, id string) error

	// Subscribe registers a live listener on a collection. onSnapshot gets
	// the full current list on every change; onError gets transport errors
	// without ending the stream. The returned cancel stops delivery.
	Subscribe(ctx context.Context, ownerID, collection string, onSnapshot SnapshotFunc, onError ErrorFunc) (cancel func(), err error)

	// Batch opens a write batch. Operations queue locally until Commit.
	Batch(ownerID string) WriteBatch
}

// WriteBatch queues set operations for one atomic commit. A batch either
// commits as a unit or fails as a unit; the caller enforces the operation
// ceiling by committing and opening a fresh batch.
type WriteBatch interface {
	// Set queues a full document write.
	Set(collection string, doc domain.Document)

	// Len returns the number of queued operations.
	Len() int

	// Commit applies all queued operations atomically.
	Commit(ctx context.Context) error
}
