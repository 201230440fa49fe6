// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - DocumentStore: Remote owner-scoped document persistence
//   - CacheStore: Local string-keyed cache persistence
//   - AuthStateProvider: Authentication state-change signal
//   - IDGenerator: Store-independent document id assignment
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - NotificationScheduler: Push reminders are disabled without it
//   - BlobStore: Avatar upload is disabled without it
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
