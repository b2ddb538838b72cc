package auth

import (
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/restaurant-console/internal/domain"
)

// Claims describes the JWT payload issued by the remote API.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decoder turns bearer credentials into claim sets. It does not verify
// signatures: the console holds no key, and the API enforces authorization.
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder builds a decoder.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// Decode parses the credential into a claim set.
func (d *Decoder) Decode(credential string) (domain.ClaimSet, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.ClaimSet{}, fmt.Errorf("%w: empty credential", ErrMalformedCredential)
	}

	claims := &Claims{}
	if _, _, err := d.parser.ParseUnverified(credential, claims); err != nil {
		return domain.ClaimSet{}, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return domain.ClaimSet{}, fmt.Errorf("%w: subject missing", ErrMalformedCredential)
	}
	if claims.ExpiresAt == nil {
		return domain.ClaimSet{}, fmt.Errorf("%w: expiry missing", ErrMalformedCredential)
	}

	set := domain.ClaimSet{
		Subject:   subject,
		Role:      domain.ParseRole(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		set.IssuedAt = claims.IssuedAt.Time
	}
	return set, nil
}

// IsExpired reports whether the claim set expires at or before now.
func IsExpired(claims domain.ClaimSet, now time.Time) bool {
	return claims.Expired(now)
}
