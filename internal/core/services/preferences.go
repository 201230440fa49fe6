package services

import (
	"context"
	"sync"
	"time"

	"github.com/w3labs/sportsync/internal/core/domain"
	"github.com/w3labs/sportsync/internal/core/ports/driven"
	"github.com/w3labs/sportsync/internal/core/ports/driving"
	"github.com/w3labs/sportsync/internal/logger"
)

// Ensure Preferences implements the interface.
var _ driving.PreferenceFeed = (*Preferences)(nil)

// Preferences keeps live snapshots of the user's tracked collections for
// the duration of an authenticated session.
//
// On login it opens one subscription per tracked collection; on logout or
// identity change it tears every subscription down before the next
// session starts, so a snapshot from a previous account can never land in
// the new session's state. Stale deliveries are fenced by session
// pointer: a callback bound to a torn-down session is dropped.
type Preferences struct {
	store    driven.DocumentStore
	auth     driven.AuthStateProvider
	settings domain.Settings

	mu           sync.Mutex
	session      *prefSession
	snapshots    map[string][]domain.Document
	errListeners map[int]func(collection string, err error)
	nextListener int
	cancelAuth   func()
}

// prefSession tracks the live subscriptions of one authenticated session.
type prefSession struct {
	uid     string
	cancels []func()
	pending map[string]struct{}
	ready   bool
	grace   *time.Timer
}

// NewPreferences creates the subscription manager. Call Start to bind it
// to the auth provider.
func NewPreferences(store driven.DocumentStore, authProvider driven.AuthStateProvider, settings domain.Settings) *Preferences {
	return &Preferences{
		store:        store,
		auth:         authProvider,
		settings:     settings.Normalize(),
		snapshots:    make(map[string][]domain.Document),
		errListeners: make(map[int]func(string, error)),
	}
}

// Start subscribes to authentication state changes. The provider invokes
// the listener immediately, so a session already logged in gets its
// subscriptions before Start returns. ctx bounds every subscription
// opened for the lifetime of the manager.
func (p *Preferences) Start(ctx context.Context) {
	p.cancelAuth = p.auth.Subscribe(func(state domain.AuthState) {
		p.handleAuthChange(ctx, state)
	})
}

// Stop detaches from the auth provider and tears down the current
// session, if any.
func (p *Preferences) Stop() {
	if p.cancelAuth != nil {
		p.cancelAuth()
		p.cancelAuth = nil
	}

	p.mu.Lock()
	old := p.session
	p.session = nil
	p.snapshots = make(map[string][]domain.Document)
	p.mu.Unlock()

	teardown(old)
}

func (p *Preferences) handleAuthChange(ctx context.Context, state domain.AuthState) {
	uid := ""
	if state.LoggedIn() {
		uid = state.Identity.UID
	}

	p.mu.Lock()
	if p.session != nil && p.session.uid == uid {
		p.mu.Unlock()
		return
	}
	if p.session == nil && uid == "" {
		p.mu.Unlock()
		return
	}

	old := p.session
	p.session = nil
	p.snapshots = make(map[string][]domain.Document)

	var session *prefSession
	if uid != "" {
		session = &prefSession{
			uid:     uid,
			pending: make(map[string]struct{}),
		}
		for _, collection := range domain.TrackedCollections() {
			session.pending[collection] = struct{}{}
		}
		p.session = session
	}
	p.mu.Unlock()

	// Old subscriptions go down before the new ones come up.
	teardown(old)

	if session == nil {
		logger.Debug("preferences: session closed")
		return
	}

	logger.Debug("preferences: opening session for %s", session.uid)
	for _, collection := range domain.TrackedCollections() {
		collection := collection
		cancel, err := p.store.Subscribe(ctx, session.uid, collection,
			func(docs []domain.Document) { p.onSnapshot(session, collection, docs) },
			func(err error) { p.onStreamError(session, collection, err) },
		)
		if err != nil {
			logger.Warn("preferences: subscribe %s failed: %v", collection, err)
			p.onStreamError(session, collection, err)
			continue
		}

		p.mu.Lock()
		if p.session != session {
			// Session was replaced while the subscription was opening.
			p.mu.Unlock()
			cancel()
			return
		}
		session.cancels = append(session.cancels, cancel)
		p.mu.Unlock()
	}

	grace := time.AfterFunc(p.settings.ReadyGracePeriod, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.session == session && !session.ready {
			session.ready = true
			logger.Warn("preferences: ready grace period elapsed with %d collections pending", len(session.pending))
		}
	})

	p.mu.Lock()
	if p.session != session {
		p.mu.Unlock()
		grace.Stop()
		return
	}
	session.grace = grace
	p.mu.Unlock()
}

func (p *Preferences) onSnapshot(session *prefSession, collection string, docs []domain.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != session {
		return
	}
	p.snapshots[collection] = docs
	delete(session.pending, collection)
	if len(session.pending) == 0 && !session.ready {
		session.ready = true
		if session.grace != nil {
			session.grace.Stop()
		}
	}
}

func (p *Preferences) onStreamError(session *prefSession, collection string, err error) {
	p.mu.Lock()
	if p.session != session {
		p.mu.Unlock()
		return
	}
	listeners := make([]func(string, error), 0, len(p.errListeners))
	for _, l := range p.errListeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	logger.Error("preferences: %s stream error: %v", collection, err)
	for _, l := range listeners {
		l(collection, err)
	}
}

// Snapshot returns the latest delivered documents for a tracked
// collection. Empty when logged out or before the first delivery.
func (p *Preferences) Snapshot(collection string) []domain.Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	docs := p.snapshots[collection]
	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Clone())
	}
	return out
}

// Ready reports whether the session's initial snapshots have all arrived.
// A logged-out manager is trivially ready.
func (p *Preferences) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return true
	}
	return p.session.ready
}

// SubscribeErrors registers a listener for subscription transport errors.
func (p *Preferences) SubscribeErrors(listener func(collection string, err error)) func() {
	p.mu.Lock()
	id := p.nextListener
	p.nextListener++
	p.errListeners[id] = listener
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.errListeners, id)
	}
}

func teardown(s *prefSession) {
	if s == nil {
		return
	}
	if s.grace != nil {
		s.grace.Stop()
	}
	for _, cancel := range s.cancels {
		cancel()
	}
}
