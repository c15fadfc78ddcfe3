package console

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/cache"
	"github.com/botdesk/botdesk/internal/domain/integration"
	"github.com/botdesk/botdesk/internal/resilience"
)

// IntegrationClient manages third-party integration configs. OAuth providers
// expose an authorization URL; key-based providers expose a connection test.
type IntegrationClient struct {
	api     *api.Client
	cache   cache.Store
	ttl     time.Duration
	breaker *resilience.Breaker
}

// Config returns the stored settings for a provider and business.
func (c *IntegrationClient) Config(ctx context.Context, provider integration.Provider, businessID string) (*integration.Config, error) {
	if !provider.Valid() {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}

	key := cache.Integration(string(provider), businessID)
	if cached, ok := cache.GetJSON[integration.Config](ctx, c.cache, key); ok {
		return &cached, nil
	}

	cfg, err := api.Call[integration.Config](ctx, c.api, http.MethodGet, c.path(provider, "config", businessID), nil)
	if err != nil {
		return nil, fmt.Errorf("get %s config: %w", provider, err)
	}

	cache.SetJSON(ctx, c.cache, key, cfg, c.ttl)
	return &cfg, nil
}

// SetConfig creates or replaces the settings for a provider and business.
func (c *IntegrationClient) SetConfig(ctx context.Context, provider integration.Provider, businessID string, req integration.ConfigRequest) (*integration.Config, error) {
	if !provider.Valid() {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	cfg, err := api.Call[integration.Config](ctx, c.api, http.MethodPost, c.path(provider, "config", businessID), req)
	if err != nil {
		return nil, fmt.Errorf("set %s config: %w", provider, err)
	}

	cache.Invalidate(ctx, c.cache, cache.Integration(string(provider), businessID))
	return &cfg, nil
}

// DeleteConfig disconnects the provider from the business.
func (c *IntegrationClient) DeleteConfig(ctx context.Context, provider integration.Provider, businessID string) error {
	if !provider.Valid() {
		return fmt.Errorf("unknown provider %q", provider)
	}

	if _, err := c.api.Do(ctx, http.MethodDelete, c.path(provider, "config", businessID), nil); err != nil {
		return fmt.Errorf("delete %s config: %w", provider, err)
	}

	cache.Invalidate(ctx, c.cache, cache.Integration(string(provider), businessID))
	return nil
}

// AuthURL returns the authorization URL for an OAuth provider. The operator
// completes the flow in a browser; the backend records the connection.
func (c *IntegrationClient) AuthURL(ctx context.Context, provider integration.Provider, businessID string) (string, error) {
	if !integration.OAuthProviders[provider] {
		return "", fmt.Errorf("%s does not use an OAuth flow", provider)
	}

	out, err := api.Call[integration.AuthURL](ctx, c.api, http.MethodGet, c.path(provider, "auth", businessID), nil)
	if err != nil {
		return "", fmt.Errorf("get %s auth url: %w", provider, err)
	}
	return out.URL, nil
}

// Test runs the key-based provider's connection test. The breaker keeps a
// repeatedly failing provider from absorbing every probe as a full timeout.
func (c *IntegrationClient) Test(ctx context.Context, provider integration.Provider, businessID string) (*integration.TestResult, error) {
	if !integration.KeyProviders[provider] {
		return nil, fmt.Errorf("%s does not support a connection test", provider)
	}

	var result integration.TestResult
	err := c.breaker.Execute(func() error {
		var callErr error
		result, callErr = api.Call[integration.TestResult](ctx, c.api, http.MethodPost, c.path(provider, "test", businessID), nil)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("test %s connection: %w", provider, err)
	}
	return &result, nil
}

func (c *IntegrationClient) path(provider integration.Provider, op, businessID string) string {
	return fmt.Sprintf("/%s/%s/%s", provider, op, businessID)
}
