package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool used by repositories.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TerminalCredential is the credential persisted for one console terminal.
type TerminalCredential struct {
	TerminalID string
	Token      string
	SavedAt    time.Time
}

// CredentialRepository persists terminal credentials.
type CredentialRepository interface {
	Upsert(ctx context.Context, terminalID, token string) error
	Get(ctx context.Context, terminalID string) (*TerminalCredential, error)
	Delete(ctx context.Context, terminalID string) error
}

type credentialRepository struct {
	db Querier
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(db Querier) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Upsert(ctx context.Context, terminalID, token string) error {
	const query = `
        INSERT INTO terminal_credentials (terminal_id, token, saved_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (terminal_id) DO UPDATE SET token = EXCLUDED.token, saved_at = EXCLUDED.saved_at`

	_, err := r.db.Exec(ctx, query, terminalID, token)
	return err
}

func (r *credentialRepository) Get(ctx context.Context, terminalID string) (*TerminalCredential, error) {
	const query = `
        SELECT terminal_id, token, saved_at
        FROM terminal_credentials WHERE terminal_id=$1`

	var cred TerminalCredential
	if err := r.db.QueryRow(ctx, query, terminalID).Scan(
		&cred.TerminalID,
		&cred.Token,
		&cred.SavedAt,
	); err != nil {
		return nil, err
	}
	return &cred, nil
}

// Delete removes the row; a missing row is not an error.
func (r *credentialRepository) Delete(ctx context.Context, terminalID string) error {
	const query = `DELETE FROM terminal_credentials WHERE terminal_id=$1`

	_, err := r.db.Exec(ctx, query, terminalID)
	return err
}
