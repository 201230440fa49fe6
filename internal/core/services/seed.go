package services

import (
	"context"
	"fmt"
	"time"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/logger"
)

// seedMarkerID is the fixed id of the appMetadata document that records a
// completed initial seed.
const seedMarkerID = "initialSeed"

// defaultLeague is one league every new account starts with.
type defaultLeague struct {
	slug string
	name string
}

var defaultLeagues = []defaultLeague{
	{slug: "eng.1", name: "Premier League"},
	{slug: "esp.1", name: "LaLiga"},
	{slug: "uefa.champions", name: "UEFA Champions League"},
}

// Seeder writes a new account's default documents exactly once.
//
// The marker document in appMetadata makes the operation idempotent:
// seeding an already seeded account is a no-op, so the engine can run it
// unconditionally on every login.
type Seeder struct {
	store driven.DocumentStore
	auth  driven.AuthStateProvider
	ids   driven.IDGenerator

	now func() time.Time
}

// NewSeeder creates the seeding service.
func NewSeeder(store driven.DocumentStore, authProvider driven.AuthStateProvider, ids driven.IDGenerator) *Seeder {
	return &Seeder{
		store: store,
		auth:  authProvider,
		ids:   ids,
		now:   time.Now,
	}
}

// Run seeds the authenticated account's defaults if it has not been
// seeded before. It reports whether a seed was performed.
//
// The defaults and the marker commit in one batch, so a failed seed
// leaves no marker and the next run retries from scratch.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	state := s.auth.Current()
	if !state.LoggedIn() {
		return false, domain.ErrNotAuthenticated
	}
	uid := state.Identity.UID

	markers, err := s.store.List(ctx, uid, domain.CollectionAppMetadata)
	if err != nil {
		return false, fmt.Errorf("%w: read seed marker: %w", domain.ErrRemoteFetch, err)
	}
	for _, doc := range markers {
		if doc.ID == seedMarkerID {
			logger.Debug("seed: account %s already seeded", uid)
			return false, nil
		}
	}

	now := s.now().UTC()
	batch := s.store.Batch(uid)

	settingsID := s.ids.NewID()
	batch.Set(domain.CollectionUserSettings, domain.Document{
		ID:      settingsID,
		OwnerID: uid,
		Fields: map[string]any{
			domain.FieldID:      settingsID,
			domain.FieldOwnerID: uid,
			"theme":             "system",
			"favoriteSport":     "soccer",
			"notifications":     true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})

	for _, league := range defaultLeagues {
		leagueID := s.ids.NewID()
		batch.Set(domain.CollectionFavoriteLeagues, domain.Document{
			ID:      leagueID,
			OwnerID: uid,
			Fields: map[string]any{
				domain.FieldID:      leagueID,
				domain.FieldOwnerID: uid,
				"slug":              league.slug,
				"name":              league.name,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	batch.Set(domain.CollectionAppMetadata, domain.Document{
		ID:      seedMarkerID,
		OwnerID: uid,
		Fields: map[string]any{
			domain.FieldID:      seedMarkerID,
			domain.FieldOwnerID: uid,
			"seededAt":          now.Format(time.RFC3339),
		},
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err := batch.Commit(ctx); err != nil {
		return false, fmt.Errorf("%w: seed account: %w", domain.ErrRemoteWrite, err)
	}

	logger.Info("seed: wrote defaults for account %s", uid)
	return true, nil
}
