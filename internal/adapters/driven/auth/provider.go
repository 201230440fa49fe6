// Package auth adapts an external authentication provider's state-change
// signal into the driven.AuthStateProvider port. The credential exchange
// itself (sign-in forms, token refresh) happens outside the engine; this
// adapter only relays the resulting identity transitions.
package auth

import (
	"sync"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.AuthStateProvider = (*Provider)(nil)

// Provider relays authentication state changes to subscribed listeners.
//
// Transitions are serialized: publishes hold a dedicated lock across
// notification, so no listener ever observes two transitions concurrently.
type Provider struct {
	publishMu sync.Mutex

	mu        sync.Mutex
	state     domain.AuthState
	listeners map[int]func(domain.AuthState)
	next      int
}

// NewProvider creates a provider in the logged-out state.
func NewProvider() *Provider {
	return &Provider{
		listeners: make(map[int]func(domain.AuthState)),
	}
}

// Current returns the present authentication state.
func (p *Provider) Current() domain.AuthState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers a listener. It is invoked immediately with the
// current state, then on every change, until cancel is called.
func (p *Provider) Subscribe(listener func(domain.AuthState)) func() {
	p.mu.Lock()
	id := p.next
	p.next++
	p.listeners[id] = listener
	state := p.state
	p.mu.Unlock()

	listener(state)

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// SignIn publishes a logged-in state carrying the identity produced by
// the external credential exchange.
func (p *Provider) SignIn(identity domain.Identity) {
	p.publish(domain.AuthState{Identity: &identity})
}

// SignOut publishes the logged-out state.
func (p *Provider) SignOut() {
	p.publish(domain.AuthState{})
}

func (p *Provider) publish(state domain.AuthState) {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	p.mu.Lock()
	p.state = state
	listeners := make([]func(domain.AuthState), 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}
