package session_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/config"
	"github.com/botdesk/botdesk/internal/domain/user"
	"github.com/botdesk/botdesk/internal/session"
	"github.com/botdesk/botdesk/internal/token"
)

func newManager(baseURL string) (*session.Manager, *token.MemStore) {
	tokens := token.NewMemStore()
	client := api.New(config.API{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		RetryBaseDelay: time.Millisecond,
	}, tokens, slog.Default())
	return session.NewManager(client, tokens, slog.Default()), tokens
}

func TestInitWithoutToken(t *testing.T) {
	m, _ := newManager("http://127.0.0.1:1")

	if got := m.State(); got != session.StateInitializing {
		t.Fatalf("expected initializing, got %s", got)
	}
	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init without token should not error: %v", err)
	}
	if got := m.State(); got != session.StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", got)
	}
}

func TestInitValidatesStoredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/profile" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer stored-tok" {
			t.Errorf("expected stored token, got %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"u1","username":"admin","role":"admin"}}`))
	}))
	defer srv.Close()

	m, tokens := newManager(srv.URL)
	tokens.SetAccessToken("stored-tok")

	if err := m.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := m.State(); got != session.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}
	if u := m.User(); u == nil || u.Username != "admin" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestInitClearsRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"token expired"}`))
	}))
	defer srv.Close()

	m, tokens := newManager(srv.URL)
	tokens.SetAccessToken("stale-tok")

	_ = m.Init(context.Background())

	if got := m.State(); got != session.StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", got)
	}
	if tokens.AccessToken() != "" {
		t.Error("expected rejected token cleared")
	}
}

func TestLoginStoresTokenAndAuthenticates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if got := r.Header.Get("Authorization"); got != "" {
				t.Errorf("login must skip auth, got header %q", got)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":"u1","username":"admin"},"token":"fresh-tok","refresh_token":"fresh-rt"}}`))
		case "/businesses":
			if got := r.Header.Get("Authorization"); got != "Bearer fresh-tok" {
				t.Errorf("expected fresh token on next call, got %q", got)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tokens := token.NewMemStore()
	client := api.New(config.API{
		BaseURL: srv.URL, Timeout: 2 * time.Second, RetryBaseDelay: time.Millisecond,
	}, tokens, slog.Default())
	m := session.NewManager(client, tokens, slog.Default())

	u, err := m.Login(context.Background(), "admin", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if u.Username != "admin" {
		t.Errorf("unexpected user %+v", u)
	}
	if m.State() != session.StateAuthenticated {
		t.Error("expected authenticated state")
	}
	if tokens.RefreshToken() != "fresh-rt" {
		t.Error("expected refresh token stored")
	}

	// Subsequent authenticated request carries the bearer token.
	if _, err := client.Do(context.Background(), http.MethodGet, "/businesses", nil); err != nil {
		t.Fatal(err)
	}
}

func TestLoginValidatesInput(t *testing.T) {
	m, _ := newManager("http://127.0.0.1:1")
	if _, err := m.Login(context.Background(), "", "pw"); err == nil {
		t.Error("expected validation error for empty username")
	}
	if _, err := m.Login(context.Background(), "admin", ""); err == nil {
		t.Error("expected validation error for empty password")
	}
}

func TestUpdateProfileRefreshesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/profile" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"u1","username":"admin","email":"old@example.com","role":"admin"}}`))
		case r.URL.Path == "/auth/profile" && r.Method == http.MethodPut:
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("profile update must be authenticated, got %q", got)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"u1","username":"admin","email":"new@example.com","role":"admin"}}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	m, tokens := newManager(srv.URL)
	tokens.SetAccessToken("tok")
	if err := m.Init(context.Background()); err != nil {
		t.Fatal(err)
	}

	u, err := m.UpdateProfile(context.Background(), user.ProfileUpdateRequest{Email: "new@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "new@example.com" {
		t.Errorf("unexpected email %s", u.Email)
	}
	if got := m.User().Email; got != "new@example.com" {
		t.Errorf("cached user not refreshed, got %s", got)
	}
}

func TestUpdateProfileValidatesInput(t *testing.T) {
	m, _ := newManager("http://127.0.0.1:1")

	if _, err := m.UpdateProfile(context.Background(), user.ProfileUpdateRequest{Email: "not-an-email"}); err == nil {
		t.Error("expected validation error for malformed email")
	}
	if _, err := m.UpdateProfile(context.Background(), user.ProfileUpdateRequest{Password: "short"}); err == nil {
		t.Error("expected validation error for short password")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	m, tokens := newManager("http://127.0.0.1:1")
	tokens.SetAccessToken("tok")
	tokens.SetRefreshToken("rt")

	m.Logout()

	if m.State() != session.StateUnauthenticated {
		t.Error("expected unauthenticated")
	}
	if tokens.AccessToken() != "" || tokens.RefreshToken() != "" {
		t.Error("expected tokens cleared")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/refresh" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"rotated-tok"}}`))
	}))
	defer srv.Close()

	m, tokens := newManager(srv.URL)
	tokens.SetAccessToken("old-tok")
	tokens.SetRefreshToken("rt-1")

	tok, err := m.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tok != "rotated-tok" {
		t.Errorf("expected rotated token, got %q", tok)
	}
	if tokens.AccessToken() != "rotated-tok" {
		t.Error("expected rotated token stored")
	}
	if tokens.RefreshToken() != "rt-1" {
		t.Error("refresh token should survive when backend omits a new one")
	}
}

func TestRefreshFailureEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":"refresh token revoked"}`))
	}))
	defer srv.Close()

	m, tokens := newManager(srv.URL)
	tokens.SetAccessToken("tok")
	tokens.SetRefreshToken("revoked-rt")

	if _, err := m.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if tokens.AccessToken() != "" || tokens.RefreshToken() != "" {
		t.Error("expected both tokens cleared")
	}
	if m.State() != session.StateUnauthenticated {
		t.Error("expected unauthenticated")
	}
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	m, _ := newManager("http://127.0.0.1:1")
	if _, err := m.Refresh(context.Background()); err == nil {
		t.Error("expected error without a stored refresh token")
	}
}

func TestConcurrentRefreshRotatesOnce(t *testing.T) {
	var rotations atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		rotations.Add(1)
		time.Sleep(30 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"rotated-tok"}}`))
	}))
	defer srv.Close()

	m, tokens := newManager(srv.URL)
	tokens.SetRefreshToken("rt-1")

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Refresh(context.Background()); err != nil {
				t.Errorf("refresh failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := rotations.Load(); got != 1 {
		t.Errorf("expected a single rotation, got %d", got)
	}
	if tokens.AccessToken() != "rotated-tok" {
		t.Error("expected rotated token stored")
	}
}
