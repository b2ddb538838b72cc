package session

import (
	"context"
	"errors"
)

// ErrNoCredential is returned by Load when nothing was saved or the store was cleared.
var ErrNoCredential = errors.New("session: no credential stored")

// TokenStore persists the terminal's bearer credential across restarts.
// Save overwrites any prior value; Clear is idempotent.
type TokenStore interface {
	Save(ctx context.Context, credential string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
