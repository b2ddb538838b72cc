package domain

import "time"

// SessionState enumerates the lifecycle states of the terminal session.
type SessionState uint8

const (
	SessionLoading SessionState = iota
	SessionAuthenticated
	SessionUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	case SessionUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// Identity is the authenticated staff member as seen by views.
type Identity struct {
	Subject string
	Role    Role
}

// Session is a read-only snapshot of the terminal session.
type Session struct {
	State     SessionState
	Identity  Identity
	ExpiresAt time.Time
}

// LoadingSession is the session every console starts with.
func LoadingSession() Session {
	return Session{State: SessionLoading}
}

// UnauthenticatedSession is the empty session.
func UnauthenticatedSession() Session {
	return Session{State: SessionUnauthenticated}
}

// AuthenticatedSession builds a session from decoded claims.
func AuthenticatedSession(claims ClaimSet) Session {
	return Session{
		State:     SessionAuthenticated,
		Identity:  Identity{Subject: claims.Subject, Role: claims.Role},
		ExpiresAt: claims.ExpiresAt,
	}
}

// IsAuthenticated reports whether a staff member is logged in.
func (s Session) IsAuthenticated() bool {
	return s.State == SessionAuthenticated
}

// IsLoading reports whether hydration has not finished yet.
func (s Session) IsLoading() bool {
	return s.State == SessionLoading
}
