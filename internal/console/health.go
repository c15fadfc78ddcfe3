package console

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/resilience"
)

// HealthClient probes the backend liveness endpoint. Probes are
// unauthenticated, never retried, and breaker-guarded.
type HealthClient struct {
	api     *api.Client
	breaker *resilience.Breaker
	log     *slog.Logger
}

// Check reports whether the backend is up. Any failure, including an open
// circuit, reads as unhealthy.
func (c *HealthClient) Check(ctx context.Context) bool {
	err := c.breaker.Execute(func() error {
		_, err := c.api.Do(ctx, http.MethodGet, "/health", nil,
			api.WithSkipAuth(), api.WithMaxRetries(0))
		return err
	})
	if err != nil {
		c.log.Debug("health check failed", "error", err)
		return false
	}
	return true
}
