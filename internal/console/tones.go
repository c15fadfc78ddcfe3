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

// ToneClient manages the per-business AI response tone. The backend holds at
// most one active tone per business.
type ToneClient struct {
	api   *api.Client
	cache cache.Store
	ttl   time.Duration
}

// Get returns the business's tone.
func (c *ToneClient) Get(ctx context.Context, businessID string) (*business.Tone, error) {
	if cached, ok := cache.GetJSON[business.Tone](ctx, c.cache, cache.Tone(businessID)); ok {
		return &cached, nil
	}

	tone, err := api.Call[business.Tone](ctx, c.api, http.MethodGet, "/businesses/"+businessID+"/tone", nil)
	if err != nil {
		return nil, fmt.Errorf("get tone: %w", err)
	}

	cache.SetJSON(ctx, c.cache, cache.Tone(businessID), tone, c.ttl)
	return &tone, nil
}

// Create sets the tone for a business that has none.
func (c *ToneClient) Create(ctx context.Context, businessID string, req business.ToneRequest) (*business.Tone, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	tone, err := api.Call[business.Tone](ctx, c.api, http.MethodPost, "/businesses/"+businessID+"/tone", req)
	if err != nil {
		return nil, fmt.Errorf("create tone: %w", err)
	}

	cache.Invalidate(ctx, c.cache, cache.Tone(businessID))
	return &tone, nil
}

// Update replaces the business's existing tone.
func (c *ToneClient) Update(ctx context.Context, businessID string, req business.ToneRequest) (*business.Tone, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	tone, err := api.Call[business.Tone](ctx, c.api, http.MethodPut, "/businesses/"+businessID+"/tone", req)
	if err != nil {
		return nil, fmt.Errorf("update tone: %w", err)
	}

	cache.Invalidate(ctx, c.cache, cache.Tone(businessID))
	return &tone, nil
}

// Delete removes the business's tone, reverting the bot to its default style.
func (c *ToneClient) Delete(ctx context.Context, businessID string) error {
	if _, err := c.api.Do(ctx, http.MethodDelete, "/businesses/"+businessID+"/tone", nil); err != nil {
		return fmt.Errorf("delete tone: %w", err)
	}

	cache.Invalidate(ctx, c.cache, cache.Tone(businessID))
	return nil
}
