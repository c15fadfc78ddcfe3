package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "botdesk.yaml"

// productionBaseURL is the fixed backend host used when no base URL is
// configured in production.
const productionBaseURL = "https://api.botdesk.app/api"

// Load returns a Config using the hierarchy: defaults < .env < YAML < ENV.
// Both the .env and YAML files are optional.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < .env < YAML < ENV.
func LoadFrom(yamlPath string) (*Config, error) {
	// Overlay .env onto the process environment first so env precedence
	// below sees it. Missing file is not an error.
	_ = godotenv.Load()

	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)
	applyEnvironment(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	// An explicit zero is indistinguishable from absence after unmarshaling
	// into an int, so probe with a pointer.
	var probe struct {
		API struct {
			MaxRetries *int `yaml:"max_retries"`
		} `yaml:"api"`
	}
	if err := yaml.Unmarshal(data, &probe); err == nil && probe.API.MaxRetries != nil {
		cfg.maxRetriesSet = true
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Environment, "BOTDESK_ENV")
	setString(&cfg.API.BaseURL, "BOTDESK_API_URL")
	setDuration(&cfg.API.Timeout, "BOTDESK_API_TIMEOUT")
	setInt(&cfg.API.MaxRetries, "BOTDESK_API_MAX_RETRIES")
	if os.Getenv("BOTDESK_API_MAX_RETRIES") != "" {
		cfg.maxRetriesSet = true
	}
	setDuration(&cfg.API.RetryBaseDelay, "BOTDESK_API_RETRY_BASE_DELAY")
	setBool(&cfg.API.Debug, "BOTDESK_API_DEBUG")
	setString(&cfg.Credentials, "BOTDESK_CREDENTIALS_FILE")
	setString(&cfg.Logging.Level, "BOTDESK_LOG_LEVEL")
	setString(&cfg.Logging.Service, "BOTDESK_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "BOTDESK_LOG_ASYNC")
	setInt64(&cfg.Cache.MaxSizeMB, "BOTDESK_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "BOTDESK_CACHE_TTL")
	setInt(&cfg.Breaker.MaxFailures, "BOTDESK_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "BOTDESK_BREAKER_TIMEOUT")
	setString(&cfg.Gateway.Addr, "BOTDESK_GATEWAY_ADDR")
	setString(&cfg.Gateway.CORSOrigin, "BOTDESK_GATEWAY_CORS_ORIGIN")
	setBool(&cfg.Telemetry.Enabled, "BOTDESK_OTEL_ENABLED")
	setString(&cfg.Telemetry.OTLPEndpoint, "BOTDESK_OTEL_ENDPOINT")
}

// applyEnvironment adjusts per-environment defaults that were not set
// explicitly: production retries failed requests and targets the fixed
// production host.
func applyEnvironment(cfg *Config) {
	if cfg.Environment != EnvProduction {
		return
	}
	if !cfg.maxRetriesSet && cfg.API.MaxRetries == 0 {
		cfg.API.MaxRetries = 2
	}
	if cfg.API.BaseURL == Defaults().API.BaseURL && os.Getenv("BOTDESK_API_URL") == "" {
		cfg.API.BaseURL = productionBaseURL
	}
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Environment != EnvDevelopment && cfg.Environment != EnvProduction {
		return errors.New("environment must be development or production")
	}
	if cfg.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if cfg.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if cfg.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if cfg.Cache.MaxSizeMB < 1 {
		return errors.New("cache.max_size_mb must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
