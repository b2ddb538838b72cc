package auth

import "github.com/spec-kit/restaurant-console/internal/domain"

// DecisionKind is the outcome of a navigation check.
type DecisionKind uint8

const (
	// DecisionWait means the session is still hydrating; render a loading affordance.
	DecisionWait DecisionKind = iota
	DecisionAllow
	DecisionRedirect
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionRedirect:
		return "redirect"
	default:
		return "invalid"
	}
}

// Decision tells the router what to do with a navigation attempt.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// Wait builds a wait decision.
func Wait() Decision { return Decision{Kind: DecisionWait} }

// Allow builds an allow decision.
func Allow() Decision { return Decision{Kind: DecisionAllow} }

// RedirectTo builds a redirect decision.
func RedirectTo(path string) Decision { return Decision{Kind: DecisionRedirect, Location: path} }

func (d Decision) String() string {
	if d.Kind == DecisionRedirect {
		return "redirect " + d.Location
	}
	return d.Kind.String()
}

// Guard decides whether a session may open a protected view.
type Guard struct {
	LoginPath        string
	UnauthorizedPath string
}

// NewGuard builds a guard with the given redirect targets.
func NewGuard(loginPath, unauthorizedPath string) Guard {
	return Guard{LoginPath: loginPath, UnauthorizedPath: unauthorizedPath}
}

// Decide is pure and never blocks. An empty role set admits any
// authenticated session; otherwise the session role must be a member.
func (g Guard) Decide(session domain.Session, required []domain.Role) Decision {
	switch session.State {
	case domain.SessionLoading:
		return Wait()
	case domain.SessionAuthenticated:
	default:
		return RedirectTo(g.LoginPath)
	}

	if len(required) == 0 {
		return Allow()
	}
	if domain.RoleIn(session.Identity.Role, required) {
		return Allow()
	}
	return RedirectTo(g.UnauthorizedPath)
}
