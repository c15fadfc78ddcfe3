package console

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/cache"
	"github.com/botdesk/botdesk/internal/domain/business"
)

// bulkConcurrency caps the fan-out of bulk operations.
const bulkConcurrency = 4

// BusinessClient is the resource client for business CRUD.
type BusinessClient struct {
	api   *api.Client
	cache cache.Store
	ttl   time.Duration
}

// List returns all businesses, serving from cache when fresh.
func (c *BusinessClient) List(ctx context.Context) ([]business.Business, error) {
	if cached, ok := cache.GetJSON[[]business.Business](ctx, c.cache, cache.BusinessList()); ok {
		return cached, nil
	}

	list, err := api.Call[[]business.Business](ctx, c.api, http.MethodGet, "/businesses", nil)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}

	cache.SetJSON(ctx, c.cache, cache.BusinessList(), list, c.ttl)
	return list, nil
}

// Get returns one business by id, serving from cache when fresh.
func (c *BusinessClient) Get(ctx context.Context, id string) (*business.Business, error) {
	if cached, ok := cache.GetJSON[business.Business](ctx, c.cache, cache.Business(id)); ok {
		return &cached, nil
	}

	b, err := api.Call[business.Business](ctx, c.api, http.MethodGet, "/businesses/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("get business %s: %w", id, err)
	}

	cache.SetJSON(ctx, c.cache, cache.Business(id), b, c.ttl)
	return &b, nil
}

// Create registers a new business. The list cache is invalidated only after
// the server confirms, so the next List reflects the new business.
func (c *BusinessClient) Create(ctx context.Context, req business.CreateRequest) (*business.Business, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	b, err := api.Call[business.Business](ctx, c.api, http.MethodPost, "/businesses", req)
	if err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}

	cache.Invalidate(ctx, c.cache, cache.BusinessList())
	return &b, nil
}

// Update modifies a business and invalidates its detail and the list cache.
func (c *BusinessClient) Update(ctx context.Context, id string, req business.UpdateRequest) (*business.Business, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	b, err := api.Call[business.Business](ctx, c.api, http.MethodPut, "/businesses/"+id, req)
	if err != nil {
		return nil, fmt.Errorf("update business %s: %w", id, err)
	}

	cache.Invalidate(ctx, c.cache, cache.Business(id), cache.BusinessList())
	return &b, nil
}

// Delete removes a business. The detail cache entry is removed entirely.
func (c *BusinessClient) Delete(ctx context.Context, id string) error {
	if _, err := c.api.Do(ctx, http.MethodDelete, "/businesses/"+id, nil); err != nil {
		return fmt.Errorf("delete business %s: %w", id, err)
	}

	cache.Invalidate(ctx, c.cache, cache.Business(id), cache.BusinessList())
	return nil
}

// BulkDelete removes several businesses. Cache invalidation for every
// affected id and the list happens together after the fan-out completes, so
// no partial-invalidation state is observable to the caller.
func (c *BusinessClient) BulkDelete(ctx context.Context, ids []string) error {
	err := c.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		_, err := c.api.Do(ctx, http.MethodDelete, "/businesses/"+id, nil)
		return err
	})

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, cache.Business(id))
	}
	keys = append(keys, cache.BusinessList())
	cache.Invalidate(ctx, c.cache, keys...)

	if err != nil {
		return fmt.Errorf("bulk delete: %w", err)
	}
	return nil
}

// BulkSetStatus sets the status of several businesses with the same
// invalidation contract as BulkDelete.
func (c *BusinessClient) BulkSetStatus(ctx context.Context, ids []string, status business.Status) error {
	req := business.UpdateRequest{Status: status}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	err := c.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		_, err := c.api.Do(ctx, http.MethodPut, "/businesses/"+id, req)
		return err
	})

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, cache.Business(id))
	}
	keys = append(keys, cache.BusinessList())
	cache.Invalidate(ctx, c.cache, keys...)

	if err != nil {
		return fmt.Errorf("bulk set status: %w", err)
	}
	return nil
}

func (c *BusinessClient) fanOut(ctx context.Context, ids []string, fn func(context.Context, string) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := fn(gctx, id); err != nil {
				return fmt.Errorf("business %s: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}
