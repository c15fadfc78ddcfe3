// Package gateway exposes the console clients over a local HTTP facade so a
// browser UI can talk to the backend through one authenticated process.
package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/botdesk/botdesk/internal/config"
	"github.com/botdesk/botdesk/internal/console"
)

// Server is the local HTTP facade.
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// New builds the gateway server with its routes and middleware mounted.
func New(cfg config.Gateway, c *console.Console, log *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(CORS(cfg.CORSOrigin))
	r.Use(Logging(log))
	MountRoutes(r, NewHandlers(c))

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// MountRoutes registers the gateway API on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/businesses", func(r chi.Router) {
			r.Get("/", h.ListBusinesses)
			r.Post("/", h.CreateBusiness)
			r.Post("/bulk-delete", h.BulkDeleteBusinesses)
			r.Post("/bulk-status", h.BulkSetBusinessStatus)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetBusiness)
				r.Put("/", h.UpdateBusiness)
				r.Delete("/", h.DeleteBusiness)

				r.Get("/whatsapp", h.GetWhatsApp)
				r.Post("/whatsapp", h.CreateWhatsApp)
				r.Put("/whatsapp", h.UpdateWhatsApp)
				r.Delete("/whatsapp", h.DeleteWhatsApp)

				r.Get("/tone", h.GetTone)
				r.Post("/tone", h.CreateTone)
				r.Put("/tone", h.UpdateTone)
				r.Delete("/tone", h.DeleteTone)

				r.Get("/conversations", h.ListConversations)
				r.Get("/conversations/{cid}/messages", h.ListMessages)
				r.Patch("/conversations/{cid}/archive", h.ArchiveConversation)
				r.Delete("/conversations/{cid}", h.DeleteConversation)

				r.Route("/integrations/{provider}", func(r chi.Router) {
					r.Get("/", h.GetIntegration)
					r.Put("/", h.SetIntegration)
					r.Delete("/", h.DeleteIntegration)
					r.Get("/auth-url", h.IntegrationAuthURL)
					r.Post("/test", h.TestIntegration)
				})
			})
		})
	})
}

// Start begins serving and blocks until the listener fails or is closed.
func (s *Server) Start() error {
	s.log.Info("gateway listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
