package driven

import "github.com/w3labs/sportsync/internal/core/domain"

// AuthStateProvider exposes the authentication lifecycle as a cancellable
// stream of states. The engine never performs the credential exchange; it
// only consumes the resulting identity and its transitions.
//
// Implementations must deliver states serially: a listener never observes
// two transitions concurrently.
type AuthStateProvider interface {
	// Current returns the present authentication state.
	Current() domain.AuthState

	// Subscribe registers a listener for state changes. The listener is
	// invoked immediately with the current state, then on every change,
	// until the returned cancel is called.
	Subscribe(listener func(domain.AuthState)) (cancel func())
}
