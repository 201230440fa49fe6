package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthenticated indicates an operation requires an identity
	// and none is present.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMissingID indicates an update or import record without an id.
	ErrMissingID = errors.New("missing document id")

	// ErrRemoteFetch indicates a non-success response or transport error
	// from the stats API.
	ErrRemoteFetch = errors.New("remote fetch failed")

	// ErrRemoteWrite indicates the document store rejected a write or delete.
	ErrRemoteWrite = errors.New("remote write failed")

	// ErrSerialization indicates a malformed cache envelope or backup JSON.
	ErrSerialization = errors.New("serialization failed")
)
