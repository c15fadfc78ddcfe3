// Package config provides hierarchical configuration loading for BotDesk.
// Precedence: defaults < .env file < YAML file < environment variables.
package config

import "time"

// Environment selects per-environment defaults.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all runtime configuration for the BotDesk console.
type Config struct {
	Environment string    `yaml:"environment"`
	API         API       `yaml:"api"`
	Credentials string    `yaml:"credentials"` // path to the token credentials file
	Logging     Logging   `yaml:"logging"`
	Cache       Cache     `yaml:"cache"`
	Breaker     Breaker   `yaml:"breaker"`
	Gateway     Gateway   `yaml:"gateway"`
	Telemetry   Telemetry `yaml:"telemetry"`

	// maxRetriesSet records an explicit max_retries in YAML or ENV, so an
	// operator's 0 survives the production default of 2.
	maxRetriesSet bool
}

// API holds backend connection and request-lifecycle configuration.
type API struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`         // per-attempt bound
	MaxRetries     int           `yaml:"max_retries"`     // retryable failures only
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	Debug          bool          `yaml:"debug"` // log each attempt
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Cache holds the in-process entity cache configuration.
type Cache struct {
	MaxSizeMB int64         `yaml:"max_size_mb"`
	TTL       time.Duration `yaml:"ttl"`
}

// Breaker holds circuit breaker configuration for probe endpoints.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Gateway holds the local HTTP facade configuration.
type Gateway struct {
	Addr       string `yaml:"addr"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Telemetry holds OpenTelemetry export configuration.
type Telemetry struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Defaults returns the development-oriented base configuration.
func Defaults() Config {
	return Config{
		Environment: EnvDevelopment,
		API: API{
			BaseURL:        "http://localhost:3001/api",
			Timeout:        30 * time.Second,
			MaxRetries:     0, // production default is 2, applied in Load
			RetryBaseDelay: time.Second,
			Debug:          false,
		},
		Credentials: "", // resolved to the user config dir when empty
		Logging: Logging{
			Level:   "info",
			Service: "botdesk",
			Async:   false,
		},
		Cache: Cache{
			MaxSizeMB: 32,
			TTL:       30 * time.Second,
		},
		Breaker: Breaker{
			MaxFailures: 3,
			Timeout:     30 * time.Second,
		},
		Gateway: Gateway{
			Addr:       "127.0.0.1:8090",
			CORSOrigin: "*",
		},
		Telemetry: Telemetry{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
		},
	}
}
