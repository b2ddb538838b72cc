package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of staff roles understood by the console.
type Role uint8

const (
	// RoleUnknown carries no privileges; any unrecognized role claim decodes to it.
	RoleUnknown Role = iota
	RoleAdmin
	RoleManager
	RoleWaiter
	RoleCashier
)

var roleNames = map[Role]string{
	RoleUnknown: "UNKNOWN",
	RoleAdmin:   "ADMIN",
	RoleManager: "MANAGER",
	RoleWaiter:  "WAITER",
	RoleCashier: "CASHIER",
}

// ParseRole maps a role claim to the enumeration. Matching ignores case and
// surrounding whitespace; unrecognized values return RoleUnknown.
func ParseRole(raw string) Role {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ADMIN":
		return RoleAdmin
	case "MANAGER":
		return RoleManager
	case "WAITER":
		return RoleWaiter
	case "CASHIER":
		return RoleCashier
	default:
		return RoleUnknown
	}
}

// ParseRoles parses a list of role names, rejecting anything outside the enumeration.
func ParseRoles(raw ...string) ([]Role, error) {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		role := ParseRole(r)
		if role == RoleUnknown {
			return nil, fmt.Errorf("unknown role %q", r)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// Known reports whether the role is one of the recognized staff roles.
func (r Role) Known() bool {
	return r != RoleUnknown && r <= RoleCashier
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleUnknown]
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name; unrecognized names become RoleUnknown.
func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}

// RoleIn reports whether role is a member of allowed. RoleUnknown is never a member.
func RoleIn(role Role, allowed []Role) bool {
	if !role.Known() {
		return false
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}
