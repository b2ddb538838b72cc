package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type storedCredential struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// FileStore keeps the credential in a JSON file readable only by the owner.
type FileStore struct {
	path string
}

var _ TokenStore = (*FileStore)(nil)

// NewFileStore creates the parent directory and returns a store writing to path.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("credential file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create credential directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the credential file location.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the credential, replacing any previous one.
func (s *FileStore) Save(_ context.Context, credential string) error {
	data, err := json.MarshalIndent(storedCredential{Token: credential, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace credential: %w", err)
	}
	return nil
}

// Load reads the credential.
func (s *FileStore) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("read credential: %w", err)
	}
	var stored storedCredential
	if err := json.Unmarshal(data, &stored); err != nil {
		// An unreadable file is handed to the decoder, which rejects it and
		// makes hydration clear the store.
		return string(data), nil
	}
	if stored.Token == "" {
		return "", ErrNoCredential
	}
	return stored.Token, nil
}

// Clear deletes the credential file.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
