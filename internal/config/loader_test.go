package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Environment != EnvDevelopment {
		t.Errorf("expected development environment, got %s", cfg.Environment)
	}
	if cfg.API.BaseURL != "http://localhost:3001/api" {
		t.Errorf("expected local base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.API.MaxRetries != 0 {
		t.Errorf("expected 0 retries in development, got %d", cfg.API.MaxRetries)
	}
	if cfg.Breaker.Timeout != 30*time.Second {
		t.Errorf("expected breaker timeout 30s, got %v", cfg.Breaker.Timeout)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
api:
  base_url: "https://staging.example.com/api"
  max_retries: 1
logging:
  level: "debug"
gateway:
  addr: "127.0.0.1:9090"
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err != nil {
		t.Fatal(err)
	}

	if cfg.API.BaseURL != "https://staging.example.com/api" {
		t.Errorf("expected staging base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.MaxRetries != 1 {
		t.Errorf("expected max_retries 1, got %d", cfg.API.MaxRetries)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Gateway.Addr != "127.0.0.1:9090" {
		t.Errorf("expected gateway addr override, got %s", cfg.Gateway.Addr)
	}
	// Unchanged fields keep defaults
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.API.Timeout)
	}
}

func TestLoadYAMLMissing(t *testing.T) {
	cfg := Defaults()
	err := loadYAML(&cfg, "/nonexistent/path.yaml")
	if err != nil {
		t.Errorf("missing YAML should not error, got %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	cfg := Defaults()

	t.Setenv("BOTDESK_API_URL", "https://env.example.com/api")
	t.Setenv("BOTDESK_API_MAX_RETRIES", "3")
	t.Setenv("BOTDESK_API_TIMEOUT", "5s")
	t.Setenv("BOTDESK_LOG_LEVEL", "warn")
	t.Setenv("BOTDESK_API_DEBUG", "true")

	loadEnv(&cfg)

	if cfg.API.BaseURL != "https://env.example.com/api" {
		t.Errorf("expected env base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.API.MaxRetries != 3 {
		t.Errorf("expected max_retries 3, got %d", cfg.API.MaxRetries)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if !cfg.API.Debug {
		t.Error("expected debug enabled")
	}
}

func TestProductionDefaults(t *testing.T) {
	cfg := Defaults()
	cfg.Environment = EnvProduction

	applyEnvironment(&cfg)

	if cfg.API.MaxRetries != 2 {
		t.Errorf("expected 2 retries in production, got %d", cfg.API.MaxRetries)
	}
	if cfg.API.BaseURL != productionBaseURL {
		t.Errorf("expected production base URL, got %s", cfg.API.BaseURL)
	}
}

func TestProductionExplicitOverridesKept(t *testing.T) {
	cfg := Defaults()
	cfg.Environment = EnvProduction
	cfg.API.BaseURL = "https://custom.example.com/api"

	applyEnvironment(&cfg)

	if cfg.API.BaseURL != "https://custom.example.com/api" {
		t.Errorf("explicit base URL should survive, got %s", cfg.API.BaseURL)
	}
}

func TestProductionExplicitZeroRetriesKept(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
environment: production
api:
  max_retries: 0
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(yamlPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.API.MaxRetries != 0 {
		t.Errorf("explicit max_retries 0 should survive production, got %d", cfg.API.MaxRetries)
	}
	// The production base URL still applies; only max_retries was pinned.
	if cfg.API.BaseURL != productionBaseURL {
		t.Errorf("expected production base URL, got %s", cfg.API.BaseURL)
	}
}

func TestProductionEnvZeroRetriesKept(t *testing.T) {
	t.Setenv("BOTDESK_API_MAX_RETRIES", "0")

	cfg := Defaults()
	cfg.Environment = EnvProduction
	loadEnv(&cfg)
	applyEnvironment(&cfg)

	if cfg.API.MaxRetries != 0 {
		t.Errorf("env max_retries 0 should survive production, got %d", cfg.API.MaxRetries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(_ *Config) {}, false},
		{"bad environment", func(c *Config) { c.Environment = "staging" }, true},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, true},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, true},
		{"negative retries", func(c *Config) { c.API.MaxRetries = -1 }, true},
		{"zero breaker failures", func(c *Config) { c.Breaker.MaxFailures = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := validate(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
