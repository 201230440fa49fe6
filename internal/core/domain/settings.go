package domain

import "time"

// MaxBatchSize is the number of write operations after which an import
// batch commits automatically. One below the remote store's 500-operation
// ceiling so the running batch never hits the hard limit.
const MaxBatchSize = 499

// Cache TTL defaults, observed per data class.
const (
	// TTLLive covers scoreboards and other fast-moving data.
	TTLLive = 15 * time.Minute

	// TTLSlow covers season calendars, team lists and rosters.
	TTLSlow = 24 * time.Hour

	// TTLNews covers news feeds.
	TTLNews = 30 * time.Minute
)

// Settings holds engine configuration. Values come from the TOML config
// store with these defaults applied for anything unset.
type Settings struct {
	// StatsAPIBaseURL is the site endpoint of the scoreboard/stats API.
	StatsAPIBaseURL string

	// DocStoreBaseURL is the root of the remote document store.
	DocStoreBaseURL string

	// MaxBatchSize caps operations per atomic import batch.
	MaxBatchSize int

	// LiveTTL, SlowTTL and NewsTTL override the cache defaults.
	LiveTTL time.Duration
	SlowTTL time.Duration
	NewsTTL time.Duration

	// ReadyGracePeriod bounds how long the subscription manager waits for
	// initial snapshots before reporting ready anyway.
	ReadyGracePeriod time.Duration

	// SubscribePollInterval is how often the REST document store adapter
	// polls a collection to synthesize snapshot deliveries.
	SubscribePollInterval time.Duration
}

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		StatsAPIBaseURL:       "https://site.api.espn.com/apis/site/v2/sports",
		DocStoreBaseURL:       "",
		MaxBatchSize:          MaxBatchSize,
		LiveTTL:               TTLLive,
		SlowTTL:               TTLSlow,
		NewsTTL:               TTLNews,
		ReadyGracePeriod:      5 * time.Second,
		SubscribePollInterval: 10 * time.Second,
	}
}

// Normalize fills zero values with defaults so partially populated
// settings loaded from config stay usable.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.StatsAPIBaseURL == "" {
		s.StatsAPIBaseURL = def.StatsAPIBaseURL
	}
	if s.MaxBatchSize <= 0 {
		s.MaxBatchSize = def.MaxBatchSize
	}
	if s.LiveTTL <= 0 {
		s.LiveTTL = def.LiveTTL
	}
	if s.SlowTTL <= 0 {
		s.SlowTTL = def.SlowTTL
	}
	if s.NewsTTL <= 0 {
		s.NewsTTL = def.NewsTTL
	}
	if s.ReadyGracePeriod <= 0 {
		s.ReadyGracePeriod = def.ReadyGracePeriod
	}
	if s.SubscribePollInterval <= 0 {
		s.SubscribePollInterval = def.SubscribePollInterval
	}
	return s
}
