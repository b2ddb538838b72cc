package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-console/internal/repository"
)

// PostgresStore keeps the credential in the terminal_credentials table.
type PostgresStore struct {
	repo       repository.CredentialRepository
	terminalID string
}

var _ TokenStore = (*PostgresStore)(nil)

// NewPostgresStore builds a store for the given terminal.
func NewPostgresStore(repo repository.CredentialRepository, terminalID string) (*PostgresStore, error) {
	if repo == nil {
		return nil, errors.New("credential repository not configured")
	}
	if terminalID == "" {
		return nil, errors.New("terminal id is required")
	}
	return &PostgresStore{repo: repo, terminalID: terminalID}, nil
}

func (s *PostgresStore) Save(ctx context.Context, credential string) error {
	if err := s.repo.Upsert(ctx, s.terminalID, credential); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (string, error) {
	cred, err := s.repo.Get(ctx, s.terminalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	return cred.Token, nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.terminalID); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
