// Package integration defines the third-party integration models. OAuth
// providers (Google Workspace, HubSpot, Salesforce) expose an authorization
// URL; key-based providers (Odoo, Airtable) expose a connection test instead.
package integration

import (
	"errors"
	"time"
)

// Provider identifies a supported third-party service.
type Provider string

const (
	ProviderGoogle     Provider = "google"
	ProviderHubSpot    Provider = "hubspot"
	ProviderSalesforce Provider = "salesforce"
	ProviderOdoo       Provider = "odoo"
	ProviderAirtable   Provider = "airtable"
)

// OAuthProviders connect through a browser authorization flow.
var OAuthProviders = map[Provider]bool{
	ProviderGoogle:     true,
	ProviderHubSpot:    true,
	ProviderSalesforce: true,
}

// KeyProviders connect through stored credentials and a connection test.
var KeyProviders = map[Provider]bool{
	ProviderOdoo:     true,
	ProviderAirtable: true,
}

// Valid reports whether p names a supported provider.
func (p Provider) Valid() bool {
	return OAuthProviders[p] || KeyProviders[p]
}

// Config is the stored integration settings for one business and provider.
// Credentials are write-only: the backend redacts them on reads.
type Config struct {
	BusinessID string            `json:"business_id"`
	Provider   Provider          `json:"provider"`
	Connected  bool              `json:"connected"`
	Settings   map[string]string `json:"settings,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ConfigRequest is the input for creating or replacing integration settings.
type ConfigRequest struct {
	Settings map[string]string `json:"settings"`
}

// Validate checks that the request has all required fields.
func (r *ConfigRequest) Validate() error {
	if len(r.Settings) == 0 {
		return errors.New("settings are required")
	}
	return nil
}

// AuthURL is the authorization URL returned for an OAuth provider. The
// operator completes the flow in a browser; the backend records the result.
type AuthURL struct {
	URL string `json:"url"`
}

// TestResult is the outcome of a key-based provider connection test.
type TestResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
