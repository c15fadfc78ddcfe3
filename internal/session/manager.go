// Package session manages the authenticated admin session: startup token
// validation, login/logout, and refresh-token rotation. It is the only
// component besides logout that mutates the token store.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/domain"
	"github.com/botdesk/botdesk/internal/domain/user"
	"github.com/botdesk/botdesk/internal/token"
)

// State is the session lifecycle state.
type State string

const (
	StateInitializing    State = "initializing"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Manager holds the process-wide session state.
type Manager struct {
	client *api.Client
	tokens token.Source
	log    *slog.Logger

	mu    sync.RWMutex
	state State
	user  *user.User

	refresh singleflight.Group
}

// NewManager creates a Manager in the Initializing state.
func NewManager(client *api.Client, tokens token.Source, log *slog.Logger) *Manager {
	return &Manager{
		client: client,
		tokens: tokens,
		log:    log,
		state:  StateInitializing,
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the authenticated user, or nil outside Authenticated.
func (m *Manager) User() *user.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Init settles the session state from the stored token: a missing token means
// Unauthenticated; an existing token is validated against the profile
// endpoint, and any validation failure clears it. Init always leaves the
// manager in a terminal state; the returned error is informational.
func (m *Manager) Init(ctx context.Context) error {
	if m.tokens.AccessToken() == "" {
		m.setState(StateUnauthenticated, nil)
		return nil
	}

	u, err := api.Call[user.User](ctx, m.client, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		m.log.Debug("stored token rejected", "error", err)
		m.tokens.Clear()
		m.setState(StateUnauthenticated, nil)
		return err
	}

	m.setState(StateAuthenticated, &u)
	return nil
}

// Login exchanges credentials for a session and persists the token pair.
func (m *Manager) Login(ctx context.Context, username, password string) (*user.User, error) {
	req := user.LoginRequest{Username: username, Password: password}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	sess, err := api.Call[user.Session](ctx, m.client, http.MethodPost, "/auth/login", req, api.WithSkipAuth())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	m.tokens.SetAccessToken(sess.Token)
	if sess.RefreshToken != "" {
		m.tokens.SetRefreshToken(sess.RefreshToken)
	}
	m.setState(StateAuthenticated, &sess.User)
	return &sess.User, nil
}

// Signup creates the first admin account and logs it in.
func (m *Manager) Signup(ctx context.Context, req user.SignupRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	sess, err := api.Call[user.Session](ctx, m.client, http.MethodPost, "/auth/signup", req, api.WithSkipAuth())
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	m.tokens.SetAccessToken(sess.Token)
	if sess.RefreshToken != "" {
		m.tokens.SetRefreshToken(sess.RefreshToken)
	}
	m.setState(StateAuthenticated, &sess.User)
	return &sess.User, nil
}

// AdminExists reports whether an admin account has been created, gating the
// signup flow.
func (m *Manager) AdminExists(ctx context.Context) (bool, error) {
	out, err := api.Call[struct {
		Exists bool `json:"exists"`
	}](ctx, m.client, http.MethodGet, "/auth/admin-exists", nil, api.WithSkipAuth())
	if err != nil {
		return false, fmt.Errorf("admin exists: %w", err)
	}
	return out.Exists, nil
}

// UpdateProfile updates the current account and refreshes the cached user.
func (m *Manager) UpdateProfile(ctx context.Context, req user.ProfileUpdateRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	u, err := api.Call[user.User](ctx, m.client, http.MethodPut, "/auth/profile", req)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	m.mu.Lock()
	if m.state == StateAuthenticated {
		m.user = &u
	}
	m.mu.Unlock()
	return &u, nil
}

// Logout clears the token pair and settles Unauthenticated.
func (m *Manager) Logout() {
	m.tokens.Clear()
	m.setState(StateUnauthenticated, nil)
}

// Refresh rotates the access token using the stored refresh token.
// On any failure both tokens are cleared and the session is ended; callers
// must treat the error as "log in again." Concurrent calls coalesce into a
// single rotation so a double refresh cannot interleave clear-then-set.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	tok, err, _ := m.refresh.Do("refresh", func() (any, error) {
		rt := m.tokens.RefreshToken()
		if rt == "" {
			return "", domain.ErrNoSession
		}

		body := map[string]string{"refresh_token": rt}
		out, err := api.Call[struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refresh_token,omitempty"`
		}](ctx, m.client, http.MethodPost, "/auth/refresh", body, api.WithSkipAuth())
		if err != nil {
			m.tokens.Clear()
			m.setState(StateUnauthenticated, nil)
			return "", fmt.Errorf("refresh: %w", err)
		}

		m.tokens.SetAccessToken(out.Token)
		if out.RefreshToken != "" {
			m.tokens.SetRefreshToken(out.RefreshToken)
		}
		return out.Token, nil
	})
	if err != nil {
		return "", err
	}
	return tok.(string), nil
}

func (m *Manager) setState(s State, u *user.User) {
	m.mu.Lock()
	m.state = s
	m.user = u
	m.mu.Unlock()
}
