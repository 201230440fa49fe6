package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore
// with real snapshot fan-out: every mutation delivers the full current
// collection to its live subscribers, in mutation order.
type DocumentStore struct {
	mu     sync.RWMutex
	owners map[string]map[string]map[string]domain.Document

	subMu   sync.Mutex
	subs    map[int]*subscription
	nextSub int

	// deliverMu serializes snapshot delivery so per-collection ordering
	// matches mutation order.
	deliverMu sync.Mutex

	writeErr    error
	commitSizes []int
}

type subscription struct {
	ownerID    string
	collection string
	onSnapshot driven.SnapshotFunc
	onError    driven.ErrorFunc
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		owners: make(map[string]map[string]map[string]domain.Document),
		subs:   make(map[int]*subscription),
	}
}

// SetWriteError makes every subsequent write or commit fail with err.
// Pass nil to restore normal behaviour. Test hook.
func (s *DocumentStore) SetWriteError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// CommitSizes returns the operation count of every committed batch,
// in commit order. Test hook.
func (s *DocumentStore) CommitSizes() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sizes := make([]int, len(s.commitSizes))
	copy(sizes, s.commitSizes)
	return sizes
}

func (s *DocumentStore) collectionLocked(ownerID, collection string) map[string]domain.Document {
	byOwner, ok := s.owners[ownerID]
	if !ok {
		byOwner = make(map[string]map[string]domain.Document)
		s.owners[ownerID] = byOwner
	}
	docs, ok := byOwner[collection]
	if !ok {
		docs = make(map[string]domain.Document)
		byOwner[collection] = docs
	}
	return docs
}

func (s *DocumentStore) snapshotLocked(ownerID, collection string) []domain.Document {
	docs := s.collectionLocked(ownerID, collection)
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, docs[id].Clone())
	}
	return out
}

// List returns a snapshot of all documents in the owner's collection.
func (s *DocumentStore) List(_ context.Context, ownerID, collection string) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(ownerID, collection), nil
}

// Set writes a full document, creating or replacing it.
func (s *DocumentStore) Set(_ context.Context, ownerID, collection string, doc domain.Document) error {
	s.mu.Lock()
	if s.writeErr != nil {
		err := s.writeErr
		s.mu.Unlock()
		return err
	}
	s.collectionLocked(ownerID, collection)[doc.ID] = doc.Clone()
	s.mu.Unlock()

	s.notify(ownerID, collection)
	return nil
}

// Update merges fields onto an existing document.
func (s *DocumentStore) Update(_ context.Context, ownerID, collection string, doc domain.Document) error {
	s.mu.Lock()
	if s.writeErr != nil {
		err := s.writeErr
		s.mu.Unlock()
		return err
	}
	docs := s.collectionLocked(ownerID, collection)
	existing, ok := docs[doc.ID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	merged := existing.Clone()
	for k, v := range doc.Fields {
		merged.Fields[k] = v
	}
	merged.UpdatedAt = doc.UpdatedAt
	docs[doc.ID] = merged
	s.mu.Unlock()

	s.notify(ownerID, collection)
	return nil
}

// Delete removes a document. Deleting a missing id is not an error.
func (s *DocumentStore) Delete(_ context.Context, ownerID, collection, id string) error {
	s.mu.Lock()
	if s.writeErr != nil {
		err := s.writeErr
		s.mu.Unlock()
		return err
	}
	docs := s.collectionLocked(ownerID, collection)
	_, existed := docs[id]
	delete(docs, id)
	s.mu.Unlock()

	if existed {
		s.notify(ownerID, collection)
	}
	return nil
}

// Subscribe registers a live listener. The current snapshot is delivered
// immediately, then again after every change until cancel is called.
func (s *DocumentStore) Subscribe(_ context.Context, ownerID, collection string, onSnapshot driven.SnapshotFunc, onError driven.ErrorFunc) (func(), error) {
	sub := &subscription{
		ownerID:    ownerID,
		collection: collection,
		onSnapshot: onSnapshot,
		onError:    onError,
	}

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.subMu.Unlock()

	s.notify(ownerID, collection)

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
	return cancel, nil
}

// EmitError delivers a transport error to every live subscriber of the
// collection without ending their streams. Test hook.
func (s *DocumentStore) EmitError(ownerID, collection string, err error) {
	for _, sub := range s.subscribers(ownerID, collection) {
		if sub.onError != nil {
			sub.onError(err)
		}
	}
}

func (s *DocumentStore) subscribers(ownerID, collection string) []*subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	var out []*subscription
	for _, sub := range s.subs {
		if sub.ownerID == ownerID && sub.collection == collection {
			out = append(out, sub)
		}
	}
	return out
}

// notify delivers the current snapshot to all subscribers of a collection.
func (s *DocumentStore) notify(ownerID, collection string) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	snapshot := s.snapshotLocked(ownerID, collection)
	s.mu.Unlock()

	for _, sub := range s.subscribers(ownerID, collection) {
		sub.onSnapshot(snapshot)
	}
}

// Batch opens a write batch for one owner.
func (s *DocumentStore) Batch(ownerID string) driven.WriteBatch {
	return &writeBatch{store: s, ownerID: ownerID}
}

type batchOp struct {
	collection string
	doc        domain.Document
}

type writeBatch struct {
	store   *DocumentStore
	ownerID string
	ops     []batchOp
}

// Set queues a full document write.
func (b *writeBatch) Set(collection string, doc domain.Document) {
	b.ops = append(b.ops, batchOp{collection: collection, doc: doc.Clone()})
}

// Len returns the number of queued operations.
func (b *writeBatch) Len() int {
	return len(b.ops)
}

// Commit applies all queued operations atomically.
func (b *writeBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	if b.store.writeErr != nil {
		err := b.store.writeErr
		b.store.mu.Unlock()
		return err
	}
	touched := make(map[string]struct{})
	for _, op := range b.ops {
		b.store.collectionLocked(b.ownerID, op.collection)[op.doc.ID] = op.doc
		touched[op.collection] = struct{}{}
	}
	b.store.commitSizes = append(b.store.commitSizes, len(b.ops))
	b.store.mu.Unlock()

	for collection := range touched {
		b.store.notify(b.ownerID, collection)
	}
	return nil
}
