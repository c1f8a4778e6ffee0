// Package session owns the answer to "am I logged in, and as whom".
//
// A single Manager instance is the only reader and writer of the
// credential store and the only source of token truth for dispatchers.
// Everything else observes it: synchronously via State/CurrentUser, or
// through a change subscription.
package session

import "time"

// State describes where the session machine currently sits. It starts
// Unknown, resolves once during bootstrap, and then cycles between
// Authenticated and Unauthenticated for the life of the process.
type State int

const (
	StateUnknown State = iota
	StateAuthenticating
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// UserSummary is the identity projection cached after a successful
// "who am I" resolution. Display-only; always derived from the latest
// successful backend answer.
type UserSummary struct {
	ID       string
	Email    string
	Username string
	FullName string
}

// merge prefers fields from primary and falls back per-field, matching
// how the app reconciled the /users/me answer with the login payload.
func merge(primary, fallback UserSummary) UserSummary {
	out := primary
	if out.ID == "" {
		out.ID = fallback.ID
	}
	if out.Email == "" {
		out.Email = fallback.Email
	}
	if out.Username == "" {
		out.Username = fallback.Username
	}
	if out.FullName == "" {
		out.FullName = fallback.FullName
	}
	return out
}

// Session is an immutable snapshot of the manager's state.
type Session struct {
	State State
	Token string
	User  *UserSummary

	// ExpiresAt is telemetry only, decoded best-effort from the token's
	// JWT exp claim. Zero when the token is opaque to us.
	ExpiresAt time.Time
}

// Reason distinguishes why a transition happened; the UI treats a
// user-initiated logout and an expired session differently.
type Reason string

const (
	ReasonBootstrap Reason = "bootstrap"
	ReasonLogin     Reason = "login"
	ReasonLogout    Reason = "logout"
	ReasonExpired   Reason = "expired"
)

// Event is delivered to subscribers on every state transition.
type Event struct {
	State  State
	Reason Reason
	User   *UserSummary
}
