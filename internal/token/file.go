package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// credentials is the on-disk shape of the token pair.
type credentials struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// FileStore persists the token pair in a JSON credentials file so sessions
// survive process restarts. Writes go through a temp file and rename; the
// file is created with mode 0600.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	creds credentials
}

// DefaultPath returns the credentials file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "botdesk", "credentials.json"), nil
}

// NewFileStore opens (or initializes) the credentials file at path.
// A missing file is not an error; it means no session is stored.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	if err := json.Unmarshal(data, &s.creds); err != nil {
		// A corrupt credentials file is treated as no session rather than
		// blocking every command.
		s.creds = credentials{}
	}
	return s, nil
}

// AccessToken returns the stored access token, or "" if absent.
func (s *FileStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.AccessToken
}

// SetAccessToken stores and persists a new access token.
func (s *FileStore) SetAccessToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.AccessToken = tok
	s.persist()
}

// RefreshToken returns the stored refresh token, or "" if absent.
func (s *FileStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.RefreshToken
}

// SetRefreshToken stores and persists a new refresh token.
func (s *FileStore) SetRefreshToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds.RefreshToken = tok
	s.persist()
}

// Clear removes both tokens and deletes the credentials file.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{}
	_ = os.Remove(s.path)
}

// persist writes the current credentials atomically. Must be called with
// s.mu held. Write failures are swallowed: the in-memory pair stays
// authoritative for the running process.
func (s *FileStore) persist() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}

	data, err := json.MarshalIndent(s.creds, "", "  ")
	if err != nil {
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, s.path)
}
