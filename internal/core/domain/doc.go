// Package domain defines the core business entities for the sportsync engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An owner-scoped record in the remote document store
//   - BackupBundle: A JSON export of a user's collections
//   - Round: A numbered grouping of a season's fixtures
//   - Identity: The authenticated user consumed from the auth signal
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
