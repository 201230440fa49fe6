package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/logger"
)

// profileDocID is the fixed id of the per-account profile document in the
// private collection.
const profileDocID = "profile"

// Profile manages the account's profile document: avatar image in blob
// storage plus the push-notification token of the current device.
//
// Blob operations return errors directly instead of the store's result
// shape; the caller decides how to surface them.
type Profile struct {
	store driven.DocumentStore
	blobs driven.BlobStore
	auth  driven.AuthStateProvider

	now func() time.Time
}

// NewProfile creates the profile service.
func NewProfile(store driven.DocumentStore, blobs driven.BlobStore, authProvider driven.AuthStateProvider) *Profile {
	return &Profile{
		store: store,
		blobs: blobs,
		auth:  authProvider,
		now:   time.Now,
	}
}

// Get returns the profile document's fields, empty if none exists yet.
func (p *Profile) Get(ctx context.Context) (map[string]any, error) {
	uid, err := p.uid()
	if err != nil {
		return nil, err
	}
	doc, err := p.find(ctx, uid)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	return doc.Clone().Fields, nil
}

// UploadAvatar stores the avatar image and records its download URL on
// the profile document. A previously stored avatar is deleted from blob
// storage after the new one is in place. filename only contributes its
// extension.
func (p *Profile) UploadAvatar(ctx context.Context, r io.Reader, filename string) (string, error) {
	uid, err := p.uid()
	if err != nil {
		return "", err
	}

	existing, err := p.find(ctx, uid)
	if err != nil {
		return "", err
	}
	previousURL := ""
	if existing != nil {
		previousURL, _ = existing.Fields["avatarUrl"].(string)
	}

	url, err := p.blobs.Upload(ctx, uid, "avatar"+path.Ext(filename), r)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := p.setField(ctx, uid, existing, "avatarUrl", url); err != nil {
		return "", err
	}

	if previousURL != "" && previousURL != url {
		if err := p.blobs.DeleteByURL(ctx, previousURL); err != nil {
			logger.Warn("delete previous avatar: %v", err)
		}
	}
	return url, nil
}

// DeleteAvatar removes the avatar from blob storage and clears its URL
// on the profile document. Deleting an absent avatar is not an error.
func (p *Profile) DeleteAvatar(ctx context.Context) error {
	uid, err := p.uid()
	if err != nil {
		return err
	}

	existing, err := p.find(ctx, uid)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	url, _ := existing.Fields["avatarUrl"].(string)
	if url == "" {
		return nil
	}

	if err := p.blobs.DeleteByURL(ctx, url); err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return p.setField(ctx, uid, existing, "avatarUrl", "")
}

// SavePushToken records the device's push-notification token.
func (p *Profile) SavePushToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty push token", domain.ErrInvalidInput)
	}
	uid, err := p.uid()
	if err != nil {
		return err
	}
	existing, err := p.find(ctx, uid)
	if err != nil {
		return err
	}
	return p.setField(ctx, uid, existing, "pushToken", token)
}

func (p *Profile) uid() (string, error) {
	state := p.auth.Current()
	if !state.LoggedIn() {
		return "", domain.ErrNotAuthenticated
	}
	return state.Identity.UID, nil
}

func (p *Profile) find(ctx context.Context, uid string) (*domain.Document, error) {
	docs, err := p.store.List(ctx, uid, domain.CollectionPrivate)
	if err != nil {
		return nil, fmt.Errorf("%w: read profile: %w", domain.ErrRemoteFetch, err)
	}
	for _, doc := range docs {
		if doc.ID == profileDocID {
			return &doc, nil
		}
	}
	return nil, nil
}

func (p *Profile) setField(ctx context.Context, uid string, existing *domain.Document, key string, value any) error {
	now := p.now().UTC()

	doc := domain.Document{
		ID:        profileDocID,
		OwnerID:   uid,
		CreatedAt: now,
		UpdatedAt: now,
		Fields: map[string]any{
			domain.FieldID:      profileDocID,
			domain.FieldOwnerID: uid,
		},
	}
	if existing != nil {
		doc = existing.Clone()
		doc.UpdatedAt = now
	}
	doc.Fields[key] = value

	if err := p.store.Set(ctx, uid, domain.CollectionPrivate, doc); err != nil {
		return fmt.Errorf("%w: write profile: %w", domain.ErrRemoteWrite, err)
	}
	return nil
}
