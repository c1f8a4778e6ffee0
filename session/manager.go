package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pitchside/pitchside-go/credstore"
	"github.com/pitchside/pitchside-go/transport"
)

// Backend is the slice of the primary API the manager needs: the login
// exchange and the "who am I" resolution. The auth feature client
// implements it.
type Backend interface {
	Login(ctx context.Context, email, password string) (token string, user UserSummary, err error)
	CurrentUser(ctx context.Context) (UserSummary, error)
}

const subscriberBuffer = 16

// Manager is the session state machine. It implements
// transport.Credentials, so dispatchers read the token from it at
// dispatch time and report 401s back through Invalidate.
type Manager struct {
	store   credstore.Store
	backend Backend
	log     zerolog.Logger

	// clearTimeout bounds the store cleanup Invalidate performs, since
	// it has no caller context to inherit.
	clearTimeout time.Duration

	mu           sync.RWMutex
	state        State
	token        string
	user         UserSummary
	hasUser      bool
	expiresAt    time.Time
	bootstrapped bool

	// inFlight serializes Login/Bootstrap: two concurrent credential
	// writes must never interleave.
	inFlight atomic.Bool

	subMu  sync.Mutex
	subs   map[uint64]chan Event
	nextID uint64
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// WithClearTimeout overrides the deadline for store cleanup during
// Invalidate.
func WithClearTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.clearTimeout = d
	}
}

// NewManager creates a session manager over the given store and backend.
func NewManager(store credstore.Store, backend Backend, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] store is required")
	}
	if backend == nil {
		return nil, errors.New("[NewManager] backend is required")
	}

	m := &Manager{
		store:        store,
		backend:      backend,
		log:          zerolog.Nop(),
		clearTimeout: 5 * time.Second,
		state:        StateUnknown,
		subs:         map[uint64]chan Event{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// State returns the current machine state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the cached identity, nil when unresolved.
func (m *Manager) CurrentUser() *UserSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasUser {
		return nil
	}
	user := m.user
	return &user
}

// Token returns the current bearer token; "" means unauthenticated.
// Part of transport.Credentials.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Snapshot returns an immutable copy of the session.
func (m *Manager) Snapshot() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Session {
	s := Session{State: m.state, Token: m.token, ExpiresAt: m.expiresAt}
	if m.hasUser {
		user := m.user
		s.User = &user
	}
	return s
}

// Subscribe registers a change listener. Events are delivered
// non-blocking: a subscriber that falls behind loses events rather
// than stalling the manager. The returned func unsubscribes.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Event, subscriberBuffer)
	m.subs[id] = ch

	return ch, func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if existing, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(existing)
		}
	}
}

func (m *Manager) publish(evt Event) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Bootstrap resolves the cold-start session exactly once per process:
// no stored token means Unauthenticated without any network call; a
// stored token is validated against /users/me and cleared when stale.
// A failing credential store degrades to Unauthenticated rather than
// propagating.
func (m *Manager) Bootstrap(ctx context.Context) (Session, error) {
	if !m.inFlight.CompareAndSwap(false, true) {
		return Session{}, ErrAuthInFlight
	}
	defer m.inFlight.Store(false)

	m.mu.Lock()
	if m.bootstrapped {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap, ErrAlreadyBootstrapped
	}
	m.bootstrapped = true
	m.state = StateAuthenticating
	m.mu.Unlock()

	token, err := m.store.Get(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("credential store unreadable, starting unauthenticated")
		m.becomeUnauthenticated(ctx, ReasonBootstrap, false)
		return m.Snapshot(), nil
	}
	if token == "" {
		m.becomeUnauthenticated(ctx, ReasonBootstrap, false)
		return m.Snapshot(), nil
	}

	// Expose the candidate token so the identity call can carry it.
	m.mu.Lock()
	m.token = token
	m.expiresAt = tokenExpiry(token)
	m.mu.Unlock()

	user, err := m.backend.CurrentUser(ctx)
	if err != nil {
		m.log.Info().Err(err).Msg("stored token rejected, clearing")
		m.becomeUnauthenticated(ctx, ReasonBootstrap, true)
		return m.Snapshot(), nil
	}

	m.mu.Lock()
	m.user = user
	m.hasUser = true
	m.mu.Unlock()
	m.transition(StateAuthenticated, ReasonBootstrap)

	return m.Snapshot(), nil
}

// Login exchanges credentials for a session. The token is persisted
// before in-memory state changes. The follow-up identity refresh is
// best effort: when it fails transiently the session stays
// Authenticated on the identity fields the login answer itself carried.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	if !m.inFlight.CompareAndSwap(false, true) {
		return Session{}, ErrAuthInFlight
	}
	defer m.inFlight.Store(false)

	m.transition(StateAuthenticating, ReasonLogin)

	token, fallback, err := m.backend.Login(ctx, email, password)
	if err != nil {
		m.becomeUnauthenticated(ctx, ReasonLogin, false)
		return m.Snapshot(), classifyLoginError(err)
	}
	if fallback.Email == "" {
		fallback.Email = email
	}

	return m.establish(ctx, token, fallback, ReasonLogin)
}

// Establish adopts a token obtained outside Login, such as the
// auto-login token a signup answer carries. Same persistence ordering
// and fallback-identity rules as Login.
func (m *Manager) Establish(ctx context.Context, token string, fallback UserSummary) (Session, error) {
	if token == "" {
		return Session{}, errors.New("[Manager.Establish] token is required")
	}
	if !m.inFlight.CompareAndSwap(false, true) {
		return Session{}, ErrAuthInFlight
	}
	defer m.inFlight.Store(false)

	m.transition(StateAuthenticating, ReasonLogin)
	return m.establish(ctx, token, fallback, ReasonLogin)
}

func (m *Manager) establish(ctx context.Context, token string, fallback UserSummary, reason Reason) (Session, error) {
	// Durable before visible. A write failure costs only restart
	// survival, so the session proceeds regardless.
	if err := m.store.Set(ctx, token); err != nil {
		m.log.Warn().Err(err).Msg("token not persisted, session will not survive restart")
	}

	m.mu.Lock()
	m.token = token
	m.expiresAt = tokenExpiry(token)
	m.user = fallback
	m.hasUser = fallback != UserSummary{}
	m.mu.Unlock()

	full, err := m.backend.CurrentUser(ctx)
	switch {
	case err == nil:
		m.mu.Lock()
		m.user = merge(full, fallback)
		m.hasUser = true
		m.mu.Unlock()
	case errors.Is(err, transport.ErrUnauthorized):
		// The fresh token was rejected outright; the dispatcher has
		// already invalidated us. Nothing to keep.
		m.becomeUnauthenticated(ctx, reason, true)
		return m.Snapshot(), errors.Wrap(ErrInvalidCredentials, "token rejected by backend")
	default:
		m.log.Debug().Err(err).Msg("identity refresh failed, keeping login identity")
	}

	m.transition(StateAuthenticated, reason)
	return m.Snapshot(), nil
}

// Logout discards the session. Safe to call at any time, in any state,
// any number of times; repeat calls produce no error and no extra
// notification.
func (m *Manager) Logout(ctx context.Context) error {
	m.becomeUnauthenticated(ctx, ReasonLogout, true)
	return nil
}

// Invalidate is the dispatcher's 401 hook: same effect as Logout but
// reported to subscribers as an expired session. Concurrent calls
// coalesce into a single transition and a single event.
// Part of transport.Credentials.
func (m *Manager) Invalidate() {
	m.mu.RLock()
	idle := m.state == StateUnauthenticated && m.token == ""
	m.mu.RUnlock()
	if idle {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.clearTimeout)
	defer cancel()
	m.becomeUnauthenticated(ctx, ReasonExpired, true)
}

// ExpiresAt returns the decoded token expiry when the backend minted a
// JWT; ok is false for opaque tokens.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expiresAt, !m.expiresAt.IsZero()
}

// becomeUnauthenticated clears in-memory identity, optionally clears
// the store, and emits at most one event. The store clear happens even
// when the state already reads Unauthenticated, keeping Logout
// meaningful after a bare Invalidate; it stays idempotent either way.
func (m *Manager) becomeUnauthenticated(ctx context.Context, reason Reason, clearStore bool) {
	m.mu.Lock()
	changed := m.state != StateUnauthenticated
	m.state = StateUnauthenticated
	m.token = ""
	m.user = UserSummary{}
	m.hasUser = false
	m.expiresAt = time.Time{}
	m.mu.Unlock()

	if clearStore {
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn().Err(err).Msg("failed to clear stored token")
		}
	}

	if changed {
		m.log.Info().Str("reason", string(reason)).Msg("session ended")
		m.publish(Event{State: StateUnauthenticated, Reason: reason})
	}
}

func (m *Manager) transition(next State, reason Reason) {
	m.mu.Lock()
	changed := m.state != next
	m.state = next
	var user *UserSummary
	if m.hasUser {
		u := m.user
		user = &u
	}
	m.mu.Unlock()

	if changed {
		m.publish(Event{State: next, Reason: reason, User: user})
	}
}

func classifyLoginError(err error) error {
	if rejected, ok := transport.IsRejected(err); ok {
		return errors.Wrap(ErrInvalidCredentials, rejected.Message)
	}
	if errors.Is(err, transport.ErrUnauthorized) {
		return errors.Wrap(ErrInvalidCredentials, "login rejected")
	}
	return errors.Wrap(err, "[Manager.Login]")
}

// tokenExpiry decodes the exp claim without verifying the signature;
// the client has no key material and only wants the timestamp for
// telemetry. Opaque tokens simply yield zero.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
