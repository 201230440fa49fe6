package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w3labs/sportsync/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_GetSetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", `{"timestamp":1,"data":{}}`))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"timestamp":1,"data":{}}`, value)

	// Set replaces.
	require.NoError(t, store.Set(ctx, "k", "v2"))
	value, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing key is fine.
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestStore_Purge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Purge(ctx))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "persisted"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "persisted", value)
}
