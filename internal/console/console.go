// Package console implements the per-entity resource clients the admin
// surfaces are built on. Each client composes the request client with the
// entity cache: reads are cached read-through, mutations are fire-and-report
// and only ever invalidate — a failed mutation leaves prior cache state
// untouched and surfaces the typed error unchanged.
package console

import (
	"log/slog"
	"time"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/cache"
	"github.com/botdesk/botdesk/internal/resilience"
)

// Console bundles the resource clients sharing one request client and cache.
type Console struct {
	Businesses    *BusinessClient
	WhatsApp      *WhatsAppClient
	Tones         *ToneClient
	Conversations *ConversationClient
	Integrations  *IntegrationClient
	Health        *HealthClient
}

// New wires the resource clients. ttl bounds how stale any cached read can
// be; the breaker guards the probe-style endpoints.
func New(apiClient *api.Client, store cache.Store, ttl time.Duration, breaker *resilience.Breaker, log *slog.Logger) *Console {
	return &Console{
		Businesses:    &BusinessClient{api: apiClient, cache: store, ttl: ttl},
		WhatsApp:      &WhatsAppClient{api: apiClient, cache: store, ttl: ttl},
		Tones:         &ToneClient{api: apiClient, cache: store, ttl: ttl},
		Conversations: &ConversationClient{api: apiClient, cache: store, ttl: ttl},
		Integrations:  &IntegrationClient{api: apiClient, cache: store, ttl: ttl, breaker: breaker},
		Health:        &HealthClient{api: apiClient, breaker: breaker, log: log},
	}
}
