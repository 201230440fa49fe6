package main

import (
	"context"
	"fmt"
	"os"

	"github.com/w3labs/sportsync/internal/adapters/driven/auth"
	"github.com/w3labs/sportsync/internal/adapters/driven/config/file"
	"github.com/w3labs/sportsync/internal/adapters/driven/docstore/rest"
	"github.com/w3labs/sportsync/internal/adapters/driven/id"
	"github.com/w3labs/sportsync/internal/adapters/driven/storage/memory"
	"github.com/w3labs/sportsync/internal/adapters/driven/storage/sqlite"
	"github.com/w3labs/sportsync/internal/adapters/driving/cli"
	"github.com/w3labs/sportsync/internal/connectors/espn"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/core/services"
	"github.com/w3labs/sportsync/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settings := file.Settings(configStore)

	cacheStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open cache store: %w", err)
	}
	defer cacheStore.Close()

	authProvider := auth.NewProvider()

	// Without a remote endpoint the engine runs on local state only.
	var docStore driven.DocumentStore
	if settings.DocStoreBaseURL != "" {
		docStore = rest.NewClient(settings.DocStoreBaseURL, authProvider, settings.SubscribePollInterval)
	} else {
		logger.Debug("no document store endpoint configured, using in-memory store")
		docStore = memory.NewDocumentStore()
	}

	ids := id.NewUUIDGenerator()
	docs := services.NewDocuments(docStore, authProvider, ids)
	cache := services.NewCache(cacheStore)
	feeds := services.NewFeeds(cache, espn.NewClient(settings.StatsAPIBaseURL), settings)
	scheduler := memory.NewNotificationScheduler()
	blobs := memory.NewBlobStore()

	stopWatch, err := configStore.Watch(func() {
		feeds.ApplySettings(file.Settings(configStore))
		logger.Debug("configuration reloaded")
	})
	if err != nil {
		logger.Warn("config watch unavailable: %v", err)
	} else {
		defer stopWatch()
	}

	prefs := services.NewPreferences(docStore, authProvider, settings)
	prefs.Start(context.Background())
	defer prefs.Stop()

	cli.SetServices(cli.Services{
		Backup:    services.NewBackup(docs, docStore, authProvider, settings.MaxBatchSize),
		Seeder:    services.NewSeeder(docStore, authProvider, ids),
		Feeds:     feeds,
		Reminders: services.NewReminders(docs, scheduler),
		Profile:   services.NewProfile(docStore, blobs, authProvider),
	})

	return cli.Execute()
}
