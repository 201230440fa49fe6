package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/core/ports/driving"
	"github.com/w3labs/sportsync/internal/logger"
)

// Ensure Backup implements the interface.
var _ driving.BackupManager = (*Backup)(nil)

// Backup performs bulk export and import of the authenticated user's
// collections.
//
// Imports run in atomic batches of at most maxBatchSize operations.
// Atomicity is per batch only: if a later batch fails, earlier committed
// batches remain applied. That is an accepted limitation of the store's
// batch API, not something the engine papers over.
type Backup struct {
	docs         *Documents
	store        driven.DocumentStore
	auth         driven.AuthStateProvider
	maxBatchSize int
}

// NewBackup creates a backup manager. maxBatchSize must stay below the
// remote store's per-batch operation ceiling; domain.MaxBatchSize is the
// engine default.
func NewBackup(docs *Documents, store driven.DocumentStore, authProvider driven.AuthStateProvider, maxBatchSize int) *Backup {
	if maxBatchSize <= 0 {
		maxBatchSize = domain.MaxBatchSize
	}
	return &Backup{
		docs:         docs,
		store:        store,
		auth:         authProvider,
		maxBatchSize: maxBatchSize,
	}
}

// ExportAll reads every named collection and bundles the non-empty ones.
func (b *Backup) ExportAll(ctx context.Context, collections []string) (domain.BackupBundle, error) {
	bundle := make(domain.BackupBundle)
	for _, collection := range collections {
		docs, err := b.docs.ListAll(ctx, collection)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", collection, err)
		}
		if len(docs) == 0 {
			continue
		}
		bundle[collection] = docs
	}
	return bundle, nil
}

// ExportJSON serializes an export of the given collections to a single
// JSON document: collection names mapped to arrays of document bodies.
func (b *Backup) ExportJSON(ctx context.Context, collections []string) ([]byte, error) {
	bundle, err := b.ExportAll(ctx, collections)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]map[string]any, len(bundle))
	for collection, docs := range bundle {
		bodies := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			bodies = append(bodies, doc.Fields)
		}
		out[collection] = bodies
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode backup: %w", domain.ErrSerialization, err)
	}
	return data, nil
}

// ImportAll writes every document of the bundle back into the store.
//
// Documents without an id are skipped, preserving the source behaviour
// (see DESIGN.md); they are counted and logged, never written. A batch
// commits automatically once it reaches maxBatchSize and a fresh batch
// opens for the remainder; the final partial batch commits after the
// loop. A commit failure aborts the remaining import.
func (b *Backup) ImportAll(ctx context.Context, bundle domain.BackupBundle) error {
	state := b.auth.Current()
	if !state.LoggedIn() {
		return domain.ErrNotAuthenticated
	}
	uid := state.Identity.UID

	// Sorted collection order keeps batch boundaries deterministic.
	collections := make([]string, 0, len(bundle))
	for collection := range bundle {
		collections = append(collections, collection)
	}
	sort.Strings(collections)

	batch := b.store.Batch(uid)
	committed := 0
	skipped := 0

	for _, collection := range collections {
		for _, doc := range bundle[collection] {
			if doc.ID == "" {
				skipped++
				continue
			}
			doc.OwnerID = uid
			batch.Set(collection, doc)

			if batch.Len() >= b.maxBatchSize {
				if err := batch.Commit(ctx); err != nil {
					return fmt.Errorf("%w: import aborted after %d committed operations: %w", domain.ErrRemoteWrite, committed, err)
				}
				committed += b.maxBatchSize
				batch = b.store.Batch(uid)
			}
		}
	}

	if batch.Len() > 0 {
		remaining := batch.Len()
		if err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("%w: import aborted after %d committed operations: %w", domain.ErrRemoteWrite, committed, err)
		}
		committed += remaining
	}

	if skipped > 0 {
		logger.Warn("import skipped %d records without an id", skipped)
	}
	logger.Info("import committed %d operations across %d collections", committed, len(collections))
	return nil
}

// ImportJSON parses a backup JSON document and imports it.
func (b *Backup) ImportJSON(ctx context.Context, data []byte) error {
	var raw map[string][]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: decode backup: %w", domain.ErrSerialization, err)
	}

	bundle := make(domain.BackupBundle, len(raw))
	for collection, bodies := range raw {
		docs := make([]domain.Document, 0, len(bodies))
		for _, body := range bodies {
			id, _ := body[domain.FieldID].(string)
			docs = append(docs, domain.Document{
				ID:     id,
				Fields: body,
			})
		}
		bundle[collection] = docs
	}
	return b.ImportAll(ctx, bundle)
}
