package domain

// Identity is the authenticated user consumed from the auth provider's
// state-change signal. The credential exchange itself happens outside the
// engine; only the resulting uid and token are used here.
type Identity struct {
	// UID scopes every document store operation.
	UID string

	// DisplayName is the human-readable profile name.
	DisplayName string

	// Token is the bearer token presented to the remote document store.
	Token string
}

// AuthState is one emission of the authentication state stream.
// A nil Identity means logged out.
type AuthState struct {
	Identity *Identity
}

// LoggedIn reports whether the state carries an identity.
func (s AuthState) LoggedIn() bool {
	return s.Identity != nil && s.Identity.UID != ""
}
