package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-console/internal/domain"
	apperrors "github.com/spec-kit/restaurant-console/pkg/util/errorutil"
)

const identityKey = "auth_identity"

// SessionSource exposes the current session snapshot.
type SessionSource interface {
	Session() domain.Session
}

// DecisionRecorder observes guard outcomes.
type DecisionRecorder interface {
	RecordDecision(path string, decision Decision)
}

// GuardMiddleware enforces route rules on every request.
type GuardMiddleware struct {
	sessions SessionSource
	guard    Guard
	recorder DecisionRecorder
}

// NewGuardMiddleware constructs middleware. recorder may be nil.
func NewGuardMiddleware(sessions SessionSource, guard Guard, recorder DecisionRecorder) *GuardMiddleware {
	return &GuardMiddleware{sessions: sessions, guard: guard, recorder: recorder}
}

// Require gates a handler behind the given roles. With no roles any
// authenticated session passes.
func (m *GuardMiddleware) Require(roles ...domain.Role) fiber.Handler {
	allowed := append([]domain.Role(nil), roles...)
	return func(c *fiber.Ctx) error {
		session := m.sessions.Session()
		decision := m.guard.Decide(session, allowed)
		if m.recorder != nil {
			m.recorder.RecordDecision(c.Route().Path, decision)
		}
		return m.apply(c, session, decision)
	}
}

// Rule gates a handler behind a route rule.
func (m *GuardMiddleware) Rule(rule RouteRule) fiber.Handler {
	if rule.Public {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return m.Require(rule.Roles...)
}

// Navigate resolves the request path against the route table. It serves the
// root redirect and the fallback for unmatched paths.
func (m *GuardMiddleware) Navigate(table *RouteTable) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := m.sessions.Session()
		decision := table.Resolve(session, c.Method(), c.Path())
		if m.recorder != nil {
			m.recorder.RecordDecision(table.label(c.Method(), c.Path()), decision)
		}
		return m.apply(c, session, decision)
	}
}

// apply renders a decision: allow continues the chain, redirect answers 302,
// wait answers 503 with Retry-After.
func (m *GuardMiddleware) apply(c *fiber.Ctx, session domain.Session, decision Decision) error {
	switch decision.Kind {
	case DecisionAllow:
		c.Locals(identityKey, session.Identity)
		return c.Next()
	case DecisionRedirect:
		return c.Redirect(decision.Location, fiber.StatusFound)
	default:
		c.Set(fiber.HeaderRetryAfter, "1")
		return apperrors.NewSessionLoading()
	}
}

// IdentityFromContext retrieves the identity admitted by the guard.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
