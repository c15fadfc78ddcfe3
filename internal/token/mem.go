package token

import "sync"

// MemStore is an in-memory Source for tests and ephemeral sessions.
type MemStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemStore creates an empty in-memory token store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// AccessToken returns the stored access token, or "" if absent.
func (s *MemStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// SetAccessToken stores a new access token.
func (s *MemStore) SetAccessToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = tok
}

// RefreshToken returns the stored refresh token, or "" if absent.
func (s *MemStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// SetRefreshToken stores a new refresh token.
func (s *MemStore) SetRefreshToken(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = tok
}

// Clear removes both tokens.
func (s *MemStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}
