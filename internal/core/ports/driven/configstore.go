package driven

import "time"

// ConfigStore provides access to engine configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetDuration retrieves a duration value stored as a string
	// (e.g. "15m"). Returns 0 on a missing key or parse failure.
	GetDuration(key string) time.Duration

	// Set stores a configuration value. The value is persisted immediately.
	Set(key string, value any) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string

	// Watch invokes onChange after the backing file is modified
	// externally and reloaded. Returns a cancel function.
	Watch(onChange func()) (cancel func(), err error)
}
