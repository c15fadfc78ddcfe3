package token

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreSetGetClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if got := s.AccessToken(); got != "" {
		t.Errorf("expected empty access token, got %q", got)
	}

	s.SetAccessToken("abc")
	s.SetRefreshToken("def")

	if got := s.AccessToken(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	if got := s.RefreshToken(); got != "def" {
		t.Errorf("expected def, got %q", got)
	}

	s.Clear()
	if s.AccessToken() != "" || s.RefreshToken() != "" {
		t.Error("expected both tokens absent after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected credentials file removed after Clear")
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s1, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	s1.SetAccessToken("persisted-token")
	s1.SetRefreshToken("persisted-refresh")

	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := s2.AccessToken(); got != "persisted-token" {
		t.Errorf("expected persisted-token, got %q", got)
	}
	if got := s2.RefreshToken(); got != "persisted-refresh" {
		t.Errorf("expected persisted-refresh, got %q", got)
	}
}

func TestFileStoreFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	s.SetAccessToken("secret")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

func TestFileStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("corrupt file should not error: %v", err)
	}
	if got := s.AccessToken(); got != "" {
		t.Errorf("expected empty token from corrupt file, got %q", got)
	}
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	s.SetAccessToken("x")
	if got := s.AccessToken(); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	s.Clear()
	if s.AccessToken() != "" || s.RefreshToken() != "" {
		t.Error("expected empty after Clear")
	}
}
