package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/restaurant-console/internal/domain"
)

func mintToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeReadsClaims(t *testing.T) {
	iat := time.Now().Add(-time.Minute).Truncate(time.Second)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := mintToken(t, Claims{
		Role: "waiter",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, domain.RoleWaiter, claims.Role)
	assert.True(t, claims.IssuedAt.Equal(iat))
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestDecodeAcceptsExpiredCredential(t *testing.T) {
	token := mintToken(t, Claims{
		Role: "MANAGER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "bob",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	claims, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.True(t, IsExpired(claims, time.Now()))
}

func TestDecodeUnknownRole(t *testing.T) {
	token := mintToken(t, Claims{
		Role: "CHEF",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "carol",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUnknown, claims.Role)
}

func TestDecodeMalformed(t *testing.T) {
	noSubject := mintToken(t, Claims{
		Role:             "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	noExpiry := mintToken(t, Claims{
		Role:             "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "dave"},
	})

	for name, credential := range map[string]string{
		"empty":      "",
		"blank":      "   ",
		"garbage":    "not-a-token",
		"two parts":  "abc.def",
		"bad base64": "###.###.###",
		"no subject": noSubject,
		"no expiry":  noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewDecoder().Decode(credential)
			assert.ErrorIs(t, err, ErrMalformedCredential)
		})
	}
}
