package cli

import (
	"github.com/w3labs/sportsync/internal/adapters/driven/auth"
	"github.com/w3labs/sportsync/internal/adapters/driven/id"
	"github.com/w3labs/sportsync/internal/adapters/driven/storage/memory"
	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/services"
)

// setupTestServices wires memory-backed services behind the commands and
// returns a cleanup that unwires them.
func setupTestServices() func() {
	store := memory.NewDocumentStore()
	provider := auth.NewProvider()
	provider.SignIn(domain.Identity{UID: "user-1"})

	ids := id.NewSequenceGenerator("doc")
	docs := services.NewDocuments(store, provider, ids)

	SetServices(Services{
		Backup:    services.NewBackup(docs, store, provider, 0),
		Seeder:    services.NewSeeder(store, provider, ids),
		Reminders: services.NewReminders(docs, memory.NewNotificationScheduler()),
		Profile:   services.NewProfile(store, memory.NewBlobStore(), provider),
	})

	return func() {
		SetServices(Services{})
	}
}
