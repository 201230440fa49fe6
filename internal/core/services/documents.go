package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/logger"
)

// Documents is the owner-scoped client for the remote document store.
// Every operation resolves the current identity first; without one it
// fails with domain.ErrNotAuthenticated.
type Documents struct {
	store driven.DocumentStore
	auth  driven.AuthStateProvider
	ids   driven.IDGenerator
	now   func() time.Time
}

// NewDocuments creates the document store client.
func NewDocuments(store driven.DocumentStore, auth driven.AuthStateProvider, ids driven.IDGenerator) *Documents {
	return &Documents{
		store: store,
		auth:  auth,
		ids:   ids,
		now:   time.Now,
	}
}

// owner resolves the authenticated owner's uid.
func (s *Documents) owner() (string, error) {
	state := s.auth.Current()
	if !state.LoggedIn() {
		return "", domain.ErrNotAuthenticated
	}
	return state.Identity.UID, nil
}

// ListAll returns a snapshot of all documents in the owner's collection.
func (s *Documents) ListAll(ctx context.Context, collection string) ([]domain.Document, error) {
	uid, err := s.owner()
	if err != nil {
		return nil, err
	}
	docs, err := s.store.List(ctx, uid, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return docs, nil
}

// Upsert creates or updates a document in the owner's collection and
// returns the resolved id.
//
// With isUpdate true, fields must carry a non-empty id; only updatedAt is
// refreshed. With isUpdate false a fresh id is generated and both audit
// timestamps are set. The id and owner uid are duplicated into the field
// map so an exported document round-trips without store metadata.
func (s *Documents) Upsert(ctx context.Context, collection string, fields map[string]any, isUpdate bool) (string, error) {
	uid, err := s.owner()
	if err != nil {
		return "", err
	}

	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}

	now := s.now()
	doc := domain.Document{
		OwnerID:   uid,
		Fields:    body,
		UpdatedAt: now,
	}

	if isUpdate {
		id, _ := body[domain.FieldID].(string)
		if id == "" {
			return "", fmt.Errorf("update %s: %w", collection, domain.ErrMissingID)
		}
		doc.ID = id
		body[domain.FieldID] = id
		body[domain.FieldOwnerID] = uid
		if err := s.store.Update(ctx, uid, collection, doc); err != nil {
			return "", fmt.Errorf("%w: update %s/%s: %w", domain.ErrRemoteWrite, collection, id, err)
		}
		logger.Debug("document %s updated in %s", id, collection)
		return id, nil
	}

	doc.ID = s.ids.NewID()
	doc.CreatedAt = now
	body[domain.FieldID] = doc.ID
	body[domain.FieldOwnerID] = uid
	if err := s.store.Set(ctx, uid, collection, doc); err != nil {
		return "", fmt.Errorf("%w: create in %s: %w", domain.ErrRemoteWrite, collection, err)
	}
	logger.Debug("document %s created in %s", doc.ID, collection)
	return doc.ID, nil
}

// Delete removes a document from the owner's collection.
// Deleting a non-existent id is not an error.
func (s *Documents) Delete(ctx context.Context, collection, id string) error {
	uid, err := s.owner()
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, uid, collection, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("%w: delete %s/%s: %w", domain.ErrRemoteWrite, collection, id, err)
	}
	return nil
}

// Subscribe registers a live listener on the owner's collection.
// onSnapshot receives the full current document list on every change.
// Transport errors are delivered to onError and the stream continues;
// a nil onError falls back to logging.
func (s *Documents) Subscribe(ctx context.Context, collection string, onSnapshot driven.SnapshotFunc, onError driven.ErrorFunc) (func(), error) {
	uid, err := s.owner()
	if err != nil {
		return nil, err
	}
	if onError == nil {
		onError = func(err error) {
			logger.Error("subscription to %s: %v", collection, err)
		}
	}
	cancel, err := s.store.Subscribe(ctx, uid, collection, onSnapshot, onError)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}
	return cancel, nil
}
