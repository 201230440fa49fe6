package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w3labs/sportsync/internal/adapters/driven/auth"
	"github.com/w3labs/sportsync/internal/adapters/driven/id"
	"github.com/w3labs/sportsync/internal/adapters/driven/storage/memory"
	"github.com/w3labs/sportsync/internal/core/domain"
)

func newTestSeeder() (*Seeder, *memory.DocumentStore, *auth.Provider) {
	store := memory.NewDocumentStore()
	provider := auth.NewProvider()
	seeder := NewSeeder(store, provider, id.NewSequenceGenerator("seed"))
	return seeder, store, provider
}

func TestSeeder_RequiresAuthentication(t *testing.T) {
	seeder, _, _ := newTestSeeder()

	_, err := seeder.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestSeeder_SeedsOnce(t *testing.T) {
	seeder, store, provider := newTestSeeder()
	provider.SignIn(domain.Identity{UID: "user-1"})
	ctx := context.Background()

	seeded, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	settings, err := store.List(ctx, "user-1", domain.CollectionUserSettings)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "system", settings[0].Fields["theme"])

	leagues, err := store.List(ctx, "user-1", domain.CollectionFavoriteLeagues)
	require.NoError(t, err)
	assert.Len(t, leagues, len(defaultLeagues))

	markers, err := store.List(ctx, "user-1", domain.CollectionAppMetadata)
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, seedMarkerID, markers[0].ID)

	// Second run is a no-op.
	seeded, err = seeder.Run(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	settings, err = store.List(ctx, "user-1", domain.CollectionUserSettings)
	require.NoError(t, err)
	assert.Len(t, settings, 1, "a second run must not duplicate defaults")
}

func TestSeeder_FailedSeedLeavesNoMarker(t *testing.T) {
	seeder, store, provider := newTestSeeder()
	provider.SignIn(domain.Identity{UID: "user-1"})
	ctx := context.Background()

	store.SetWriteError(assert.AnError)
	_, err := seeder.Run(ctx)
	require.ErrorIs(t, err, domain.ErrRemoteWrite)

	store.SetWriteError(nil)
	markers, err := store.List(ctx, "user-1", domain.CollectionAppMetadata)
	require.NoError(t, err)
	assert.Empty(t, markers, "a failed seed must stay retryable")

	seeded, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestSeeder_IsPerAccount(t *testing.T) {
	seeder, store, provider := newTestSeeder()
	ctx := context.Background()

	provider.SignIn(domain.Identity{UID: "user-1"})
	seeded, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	provider.SignIn(domain.Identity{UID: "user-2"})
	seeded, err = seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, seeded, "each account seeds independently")

	settings, err := store.List(ctx, "user-2", domain.CollectionUserSettings)
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}
