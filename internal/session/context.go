package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-console/internal/auth"
	"github.com/spec-kit/restaurant-console/internal/domain"
	"github.com/spec-kit/restaurant-console/internal/events"
	"github.com/spec-kit/restaurant-console/internal/observability"
)

// Authenticator exchanges a username and password for a bearer credential.
// Implementations return auth.ErrInvalidCredentials on rejection and
// auth.ErrAuthServiceUnavailable for any other failure.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Observer is notified after every session transition.
type Observer func(domain.Session)

// Dependencies encapsulates what the manager needs.
type Dependencies struct {
	Store         TokenStore
	Decoder       *auth.Decoder
	Authenticator Authenticator
	Logger        *zap.Logger
	Metrics       *observability.Metrics
	Events        events.Dispatcher
	Now           func() time.Time
}

// Manager owns the terminal session. It is the only writer; views read
// snapshots through Session or subscribe for transitions.
type Manager struct {
	store   TokenStore
	decoder *auth.Decoder
	authn   Authenticator
	logger  *zap.Logger
	metrics *observability.Metrics
	events  events.Dispatcher
	now     func() time.Time

	// writeMu orders token store writes with the state they belong to.
	writeMu sync.Mutex

	mu         sync.RWMutex
	current    domain.Session
	credential string
	observers  map[int]Observer
	nextID     int
}

// NewManager builds a manager in the Loading state.
func NewManager(deps Dependencies) *Manager {
	m := &Manager{
		store:     deps.Store,
		decoder:   deps.Decoder,
		authn:     deps.Authenticator,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		events:    deps.Events,
		now:       deps.Now,
		current:   domain.LoadingSession(),
		observers: make(map[int]Observer),
	}
	if m.decoder == nil {
		m.decoder = auth.NewDecoder()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Session returns the current snapshot.
func (m *Manager) Session() domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Credential returns the bearer credential backing an authenticated session.
func (m *Manager) Credential() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current.State != domain.SessionAuthenticated || m.credential == "" {
		return "", false
	}
	return m.credential, true
}

// Subscribe registers an observer and returns a function that removes it.
func (m *Manager) Subscribe(fn Observer) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.observers, id)
			m.mu.Unlock()
		})
	}
}

// Hydrate rebuilds the session from the token store. It only acts while the
// session is Loading; later calls return the current session unchanged.
func (m *Manager) Hydrate(ctx context.Context) domain.Session {
	if current := m.Session(); current.State != domain.SessionLoading {
		return current
	}

	credential, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoCredential) {
			m.logger.Warn("unable to load stored credential", zap.Error(err))
		}
		return m.resolveHydration(ctx, domain.UnauthenticatedSession(), "")
	}

	claims, err := m.decoder.Decode(credential)
	if err != nil {
		m.forgetStored(ctx, domain.Identity{}, events.ReasonMalformed)
		return m.resolveHydration(ctx, domain.UnauthenticatedSession(), "")
	}
	if auth.IsExpired(claims, m.now()) {
		expired := domain.AuthenticatedSession(claims).Identity
		m.forgetStored(ctx, expired, events.ReasonExpired)
		return m.resolveHydration(ctx, domain.UnauthenticatedSession(), "")
	}

	return m.resolveHydration(ctx, domain.AuthenticatedSession(claims), credential)
}

// Login authenticates against the remote endpoint and adopts the returned
// identity. Logging in while authenticated logs the current identity out first.
// On any failure the session stays Unauthenticated and nothing is persisted.
func (m *Manager) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if m.Session().IsAuthenticated() {
		m.logger.Info("login while authenticated; logging out current session")
		m.Logout(ctx)
	}

	credential, err := m.authn.Login(ctx, username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) && !errors.Is(err, auth.ErrAuthServiceUnavailable) {
			err = fmt.Errorf("%w: %v", auth.ErrAuthServiceUnavailable, err)
		}
		m.metrics.RecordLogin(loginOutcome(err))
		return m.Session(), err
	}

	claims, err := m.decoder.Decode(credential)
	if err != nil {
		m.metrics.RecordLogin("malformed")
		return m.Session(), err
	}
	if auth.IsExpired(claims, m.now()) {
		m.metrics.RecordLogin("expired")
		return m.Session(), fmt.Errorf("%w: issued credential already expired", auth.ErrExpiredCredential)
	}

	next := domain.AuthenticatedSession(claims)
	m.writeMu.Lock()
	if err := m.store.Save(ctx, credential); err != nil {
		m.writeMu.Unlock()
		m.metrics.RecordLogin("store_failed")
		return m.Session(), fmt.Errorf("%w: persist credential: %v", auth.ErrAuthServiceUnavailable, err)
	}
	observers := m.swap(next, credential)
	m.writeMu.Unlock()

	m.metrics.RecordLogin("success")
	m.announce(next, observers)
	m.publish(ctx, events.EventLoggedIn, next.Identity, "")
	return next, nil
}

// Logout clears the stored credential and the in-memory identity. It never
// fails; store errors are logged.
func (m *Manager) Logout(ctx context.Context) domain.Session {
	m.writeMu.Lock()
	return m.logout(ctx, events.EventLoggedOut, "")
}

// ExpireOnRejection forces a logout after the remote API rejected
// credential on some other call. A rejection of a credential the session no
// longer holds is ignored.
func (m *Manager) ExpireOnRejection(ctx context.Context, credential string) domain.Session {
	m.writeMu.Lock()
	m.mu.RLock()
	current, held := m.current, m.credential
	m.mu.RUnlock()
	if !current.IsAuthenticated() {
		m.writeMu.Unlock()
		return current
	}
	if credential != held {
		m.writeMu.Unlock()
		m.logger.Info("ignoring rejection of a superseded credential", zap.String("subject", current.Identity.Subject))
		return current
	}
	m.logger.Info("forced logout", zap.String("reason", events.ReasonRejected))
	return m.logout(ctx, events.EventForcedLogout, events.ReasonRejected)
}

// logout must be called with writeMu held; it releases it.
func (m *Manager) logout(ctx context.Context, eventType events.EventType, reason string) domain.Session {
	previous := m.Session()
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("unable to clear stored credential", zap.Error(err))
	}
	next := domain.UnauthenticatedSession()
	observers := m.swap(next, "")
	m.writeMu.Unlock()

	m.announce(next, observers)
	if previous.IsAuthenticated() {
		m.publish(ctx, eventType, previous.Identity, reason)
	}
	return next
}

// forgetStored drops an unusable stored credential, but only while the
// session is still Loading. Once a login or logout has moved it on, the
// store belongs to that transition.
func (m *Manager) forgetStored(ctx context.Context, identity domain.Identity, reason string) {
	m.writeMu.Lock()
	if m.Session().State != domain.SessionLoading {
		m.writeMu.Unlock()
		return
	}
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("unable to clear stored credential", zap.Error(err))
	}
	m.writeMu.Unlock()

	m.logger.Info("forced logout", zap.String("reason", reason))
	m.publish(ctx, events.EventForcedLogout, identity, reason)
}

// resolveHydration applies the hydration result unless a login or logout
// already moved the session out of Loading.
func (m *Manager) resolveHydration(ctx context.Context, next domain.Session, credential string) domain.Session {
	m.mu.Lock()
	if m.current.State != domain.SessionLoading {
		current := m.current
		m.mu.Unlock()
		return current
	}
	m.current = next
	m.credential = credential
	observers := m.snapshotObservers()
	m.mu.Unlock()

	m.announce(next, observers)
	m.publish(ctx, events.EventSessionHydrated, next.Identity, "")
	return next
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, identity domain.Identity, reason string) {
	if m.events == nil {
		return
	}
	event := events.NewSessionEvent(eventType, identity, reason, m.now())
	if err := m.events.Publish(ctx, event); err != nil {
		m.logger.Warn("session event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func (m *Manager) swap(next domain.Session, credential string) []Observer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = next
	m.credential = credential
	return m.snapshotObservers()
}

func (m *Manager) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(m.observers))
	for _, fn := range m.observers {
		out = append(out, fn)
	}
	return out
}

func (m *Manager) announce(next domain.Session, observers []Observer) {
	m.logger.Info("session transition",
		zap.String("state", next.State.String()),
		zap.String("subject", next.Identity.Subject),
		zap.String("role", next.Identity.Role.String()))
	m.metrics.RecordSession(next)
	for _, fn := range observers {
		fn(next)
	}
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "unavailable"
	}
}
