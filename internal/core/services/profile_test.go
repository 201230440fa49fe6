package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w3labs/sportsync/internal/adapters/driven/auth"
	"github.com/w3labs/sportsync/internal/adapters/driven/storage/memory"
	"github.com/w3labs/sportsync/internal/core/domain"
)

func newTestProfile() (*Profile, *memory.BlobStore, *auth.Provider) {
	store := memory.NewDocumentStore()
	blobs := memory.NewBlobStore()
	provider := auth.NewProvider()
	return NewProfile(store, blobs, provider), blobs, provider
}

func TestProfile_RequiresAuthentication(t *testing.T) {
	profile, _, _ := newTestProfile()
	ctx := context.Background()

	_, err := profile.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = profile.UploadAvatar(ctx, strings.NewReader("png"), "me.png")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	err = profile.SavePushToken(ctx, "tok")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestProfile_AvatarLifecycle(t *testing.T) {
	profile, blobs, provider := newTestProfile()
	provider.SignIn(domain.Identity{UID: "user-1"})
	ctx := context.Background()

	url, err := profile.UploadAvatar(ctx, strings.NewReader("first"), "me.png")
	require.NoError(t, err)
	require.NotEmpty(t, url)

	data, ok := blobs.Blob(url)
	require.True(t, ok)
	assert.Equal(t, "first", string(data))

	fields, err := profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, url, fields["avatarUrl"])

	require.NoError(t, profile.DeleteAvatar(ctx))
	_, ok = blobs.Blob(url)
	assert.False(t, ok, "blob must be gone after delete")

	fields, err = profile.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, fields["avatarUrl"])

	// Deleting again is a no-op.
	require.NoError(t, profile.DeleteAvatar(ctx))
}

func TestProfile_PushTokenSurvivesAvatarWrites(t *testing.T) {
	profile, _, provider := newTestProfile()
	provider.SignIn(domain.Identity{UID: "user-1"})
	ctx := context.Background()

	require.NoError(t, profile.SavePushToken(ctx, "device-token-1"))

	_, err := profile.UploadAvatar(ctx, strings.NewReader("img"), "me.jpg")
	require.NoError(t, err)

	fields, err := profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "device-token-1", fields["pushToken"], "profile writes must merge, not replace")
	assert.NotEmpty(t, fields["avatarUrl"])
}

func TestProfile_RejectsEmptyPushToken(t *testing.T) {
	profile, _, provider := newTestProfile()
	provider.SignIn(domain.Identity{UID: "user-1"})

	err := profile.SavePushToken(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProfile_GetEmptyForNewAccount(t *testing.T) {
	profile, _, provider := newTestProfile()
	provider.SignIn(domain.Identity{UID: "user-1"})

	fields, err := profile.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fields)
}
