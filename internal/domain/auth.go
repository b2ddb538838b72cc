package domain

import "time"

// ClaimSet is the structured content decoded from a bearer credential.
type ClaimSet struct {
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claims expire at or before now.
func (c ClaimSet) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
