package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":    RoleAdmin,
		"manager":  RoleManager,
		" Waiter ": RoleWaiter,
		"cashier":  RoleCashier,
		"chef":     RoleUnknown,
		"":         RoleUnknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseRole(raw), raw)
	}
}

func TestParseRolesRejectsUnknown(t *testing.T) {
	roles, err := ParseRoles("waiter", "MANAGER")
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleWaiter, RoleManager}, roles)

	_, err = ParseRoles("waiter", "chef")
	assert.Error(t, err)
}

func TestRoleInNeverAdmitsUnknown(t *testing.T) {
	assert.True(t, RoleIn(RoleWaiter, []Role{RoleWaiter, RoleManager}))
	assert.False(t, RoleIn(RoleCashier, []Role{RoleWaiter, RoleManager}))
	assert.False(t, RoleIn(RoleUnknown, []Role{RoleUnknown}))
	assert.False(t, RoleIn(RoleAdmin, nil))
}

func TestRoleText(t *testing.T) {
	text, err := RoleManager.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "MANAGER", string(text))

	var r Role
	require.NoError(t, r.UnmarshalText([]byte("waiter")))
	assert.Equal(t, RoleWaiter, r)
	assert.Equal(t, "UNKNOWN", Role(42).String())
}

func TestClaimSetExpiredAtBoundary(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	claims := ClaimSet{ExpiresAt: now}

	assert.True(t, claims.Expired(now))
	assert.False(t, claims.Expired(now.Add(-time.Second)))
}

func TestAuthenticatedSession(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	s := AuthenticatedSession(ClaimSet{Subject: "alice", Role: RoleWaiter, ExpiresAt: exp})

	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsLoading())
	assert.Equal(t, Identity{Subject: "alice", Role: RoleWaiter}, s.Identity)
	assert.Equal(t, exp, s.ExpiresAt)
	assert.True(t, LoadingSession().IsLoading())
	assert.Equal(t, "unauthenticated", UnauthenticatedSession().State.String())
}
