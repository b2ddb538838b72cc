package auth

import (
	"net/http"
	"strings"

	"github.com/spec-kit/restaurant-console/internal/domain"
)

// RouteRule pairs a path pattern with the roles allowed to open it.
// Public rules bypass the guard; a nil Roles slice admits any authenticated session.
type RouteRule struct {
	Method string
	Path   string
	Roles  []domain.Role
	Public bool
}

// RouteTable resolves navigation attempts against a static set of rules.
type RouteTable struct {
	guard   Guard
	landing string
	rules   []RouteRule
}

// NewRouteTable builds a table. Rules with an empty method match GET.
func NewRouteTable(guard Guard, landing string, rules ...RouteRule) *RouteTable {
	normalized := make([]RouteRule, 0, len(rules))
	for _, r := range rules {
		if r.Method == "" {
			r.Method = http.MethodGet
		}
		r.Method = strings.ToUpper(r.Method)
		r.Path = cleanPath(r.Path)
		normalized = append(normalized, r)
	}
	return &RouteTable{guard: guard, landing: landing, rules: normalized}
}

// Guard returns the guard the table delegates to.
func (t *RouteTable) Guard() Guard {
	return t.guard
}

// Landing returns the view the root path redirects to.
func (t *RouteTable) Landing() string {
	return t.landing
}

// Rules returns a copy of the configured rules.
func (t *RouteTable) Rules() []RouteRule {
	out := make([]RouteRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Lookup finds the rule for method and path.
func (t *RouteTable) Lookup(method, path string) (RouteRule, bool) {
	method = strings.ToUpper(method)
	path = cleanPath(path)
	for _, r := range t.rules {
		if r.Method == method && matchPattern(r.Path, path) {
			return r, true
		}
	}
	return RouteRule{}, false
}

// Resolve returns the decision the router makes for a navigation attempt.
func (t *RouteTable) Resolve(session domain.Session, method, path string) Decision {
	if cleanPath(path) == "/" {
		decision := t.guard.Decide(session, nil)
		if decision.Kind == DecisionAllow {
			return RedirectTo(t.landing)
		}
		return decision
	}

	rule, ok := t.Lookup(method, path)
	if !ok {
		return RedirectTo(t.guard.LoginPath)
	}
	if rule.Public {
		return Allow()
	}
	return t.guard.Decide(session, rule.Roles)
}

// label names a path for metrics without leaking arbitrary request paths.
func (t *RouteTable) label(method, path string) string {
	if cleanPath(path) == "/" {
		return "/"
	}
	if rule, ok := t.Lookup(method, path); ok {
		return rule.Path
	}
	return "*"
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// matchPattern compares slash-separated segments; ":name" matches any non-empty segment.
func matchPattern(pattern, path string) bool {
	ps := strings.Split(pattern, "/")
	xs := strings.Split(path, "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
