package driving

import (
	"context"

	"github.com/w3labs/sportsync/internal/core/domain"
)

// BackupManager performs bulk export and import of the authenticated
// user's collections.
type BackupManager interface {
	// ExportAll reads every named collection and bundles the non-empty
	// ones into a single backup.
	ExportAll(ctx context.Context, collections []string) (domain.BackupBundle, error)

	// ExportJSON serializes an export of the given collections to JSON.
	ExportJSON(ctx context.Context, collections []string) ([]byte, error)

	// ImportAll writes every document of the bundle back into the store
	// in batches. Committed batches stay applied if a later batch fails.
	ImportAll(ctx context.Context, bundle domain.BackupBundle) error

	// ImportJSON parses a backup JSON document and imports it.
	ImportJSON(ctx context.Context, data []byte) error
}
