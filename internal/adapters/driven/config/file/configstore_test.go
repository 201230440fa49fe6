package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.stats_base_url", "http://localhost:9999"))
	assert.Equal(t, "http://localhost:9999", store.GetString("api.stats_base_url"))

	require.NoError(t, store.Set("sync.max_batch_size", 100))
	assert.Equal(t, 100, store.GetInt("sync.max_batch_size"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.live_ttl", "5m"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, reopened.GetDuration("cache.live_ttl"))
}

func TestConfigStore_GetDuration(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("cache.news_ttl", "30m"))
	assert.Equal(t, 30*time.Minute, store.GetDuration("cache.news_ttl"))

	require.NoError(t, store.Set("cache.bad_ttl", "soon"))
	assert.Zero(t, store.GetDuration("cache.bad_ttl"))
	assert.Zero(t, store.GetDuration("missing"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\nstats_base_url = \"http://example.test\"\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", store.GetString("api.stats_base_url"))
}

func TestConfigStore_WatchReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("sync.max_batch_size", 10))

	changed := make(chan struct{}, 1)
	cancel, err := store.Watch(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, os.WriteFile(store.Path(), []byte("[sync]\nmax_batch_size = 25\n"), 0600))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not report the file change")
	}
	assert.Equal(t, 25, store.GetInt("sync.max_batch_size"))
}

func TestSettings_FillsDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.live_ttl", "1m"))

	settings := Settings(store)
	assert.Equal(t, time.Minute, settings.LiveTTL)
	assert.Equal(t, 499, settings.MaxBatchSize, "unset keys fall back to defaults")
	assert.NotEmpty(t, settings.StatsAPIBaseURL)
}
