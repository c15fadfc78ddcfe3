package console

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/cache"
	"github.com/botdesk/botdesk/internal/domain/business"
)

// WhatsAppClient manages the per-business WhatsApp Business API config.
type WhatsAppClient struct {
	api   *api.Client
	cache cache.Store
	ttl   time.Duration
}

// Get returns the business's WhatsApp config.
func (c *WhatsAppClient) Get(ctx context.Context, businessID string) (*business.WhatsAppConfig, error) {
	if cached, ok := cache.GetJSON[business.WhatsAppConfig](ctx, c.cache, cache.WhatsApp(businessID)); ok {
		return &cached, nil
	}

	cfg, err := api.Call[business.WhatsAppConfig](ctx, c.api, http.MethodGet, "/businesses/"+businessID+"/whatsapp", nil)
	if err != nil {
		return nil, fmt.Errorf("get whatsapp config: %w", err)
	}

	cache.SetJSON(ctx, c.cache, cache.WhatsApp(businessID), cfg, c.ttl)
	return &cfg, nil
}

// Create attaches a WhatsApp config to a business that has none.
func (c *WhatsAppClient) Create(ctx context.Context, businessID string, req business.WhatsAppConfigRequest) (*business.WhatsAppConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	cfg, err := api.Call[business.WhatsAppConfig](ctx, c.api, http.MethodPost, "/businesses/"+businessID+"/whatsapp", req)
	if err != nil {
		return nil, fmt.Errorf("create whatsapp config: %w", err)
	}

	cache.Invalidate(ctx, c.cache, cache.WhatsApp(businessID))
	return &cfg, nil
}

// Update replaces the business's existing WhatsApp config.
func (c *WhatsAppClient) Update(ctx context.Context, businessID string, req business.WhatsAppConfigRequest) (*business.WhatsAppConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	cfg, err := api.Call[business.WhatsAppConfig](ctx, c.api, http.MethodPut, "/businesses/"+businessID+"/whatsapp", req)
	if err != nil {
		return nil, fmt.Errorf("update whatsapp config: %w", err)
	}

	cache.Invalidate(ctx, c.cache, cache.WhatsApp(businessID))
	return &cfg, nil
}

// Delete removes the business's WhatsApp config.
func (c *WhatsAppClient) Delete(ctx context.Context, businessID string) error {
	if _, err := c.api.Do(ctx, http.MethodDelete, "/businesses/"+businessID+"/whatsapp", nil); err != nil {
		return fmt.Errorf("delete whatsapp config: %w", err)
	}

	cache.Invalidate(ctx, c.cache, cache.WhatsApp(businessID))
	return nil
}
