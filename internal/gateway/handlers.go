package gateway

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/botdesk/botdesk/internal/console"
	"github.com/botdesk/botdesk/internal/domain/business"
	"github.com/botdesk/botdesk/internal/domain/integration"
)

const bodyLimit = 1 << 20 // 1 MiB

// Handlers adapts the console clients to HTTP. The gateway holds no state
// of its own; every handler delegates to a client and translates the result.
type Handlers struct {
	console *console.Console
}

// NewHandlers wires the console clients into HTTP handlers.
func NewHandlers(c *console.Console) *Handlers {
	return &Handlers{console: c}
}

// --- Businesses ---

func (h *Handlers) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	list, err := h.console.Businesses.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *Handlers) GetBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := h.console.Businesses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *Handlers) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[business.CreateRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	b, err := h.console.Businesses.Create(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, b)
}

func (h *Handlers) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[business.UpdateRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	b, err := h.console.Businesses.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *Handlers) DeleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := h.console.Businesses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

type bulkRequest struct {
	IDs    []string        `json:"ids"`
	Status business.Status `json:"status,omitempty"`
}

func (h *Handlers) BulkDeleteBusinesses(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[bulkRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	if err := h.console.Businesses.BulkDelete(r.Context(), req.IDs); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (h *Handlers) BulkSetBusinessStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[bulkRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	if err := h.console.Businesses.BulkSetStatus(r.Context(), req.IDs, req.Status); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- WhatsApp config ---

func (h *Handlers) GetWhatsApp(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.console.WhatsApp.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, cfg)
}

func (h *Handlers) CreateWhatsApp(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[business.WhatsAppConfigRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	cfg, err := h.console.WhatsApp.Create(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, cfg)
}

func (h *Handlers) UpdateWhatsApp(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[business.WhatsAppConfigRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	cfg, err := h.console.WhatsApp.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, cfg)
}

func (h *Handlers) DeleteWhatsApp(w http.ResponseWriter, r *http.Request) {
	if err := h.console.WhatsApp.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- Tone ---

func (h *Handlers) GetTone(w http.ResponseWriter, r *http.Request) {
	tone, err := h.console.Tones.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, tone)
}

func (h *Handlers) CreateTone(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[business.ToneRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	tone, err := h.console.Tones.Create(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, tone)
}

func (h *Handlers) UpdateTone(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[business.ToneRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	tone, err := h.console.Tones.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, tone)
}

func (h *Handlers) DeleteTone(w http.ResponseWriter, r *http.Request) {
	if err := h.console.Tones.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- Conversations ---

func (h *Handlers) ListConversations(w http.ResponseWriter, r *http.Request) {
	list, err := h.console.Conversations.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	pg, err := h.console.Conversations.Messages(r.Context(), chi.URLParam(r, "cid"), page, limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, pg)
}

func (h *Handlers) ArchiveConversation(w http.ResponseWriter, r *http.Request) {
	err := h.console.Conversations.Archive(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cid"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (h *Handlers) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	err := h.console.Conversations.Delete(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "cid"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// --- Integrations ---

func (h *Handlers) GetIntegration(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.console.Integrations.Config(r.Context(), provider(r), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, cfg)
}

func (h *Handlers) SetIntegration(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[integration.ConfigRequest](w, r, bodyLimit)
	if !ok {
		return
	}
	cfg, err := h.console.Integrations.SetConfig(r.Context(), provider(r), chi.URLParam(r, "id"), req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, cfg)
}

func (h *Handlers) DeleteIntegration(w http.ResponseWriter, r *http.Request) {
	if err := h.console.Integrations.DeleteConfig(r.Context(), provider(r), chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

func (h *Handlers) IntegrationAuthURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.console.Integrations.AuthURL(r.Context(), provider(r), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, integration.AuthURL{URL: url})
}

func (h *Handlers) TestIntegration(w http.ResponseWriter, r *http.Request) {
	res, err := h.console.Integrations.Test(r.Context(), provider(r), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func provider(r *http.Request) integration.Provider {
	return integration.Provider(chi.URLParam(r, "provider"))
}

// --- Health ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	up := h.console.Health.Check(r.Context())
	status := http.StatusOK
	if !up {
		status = http.StatusServiceUnavailable
	}
	writeData(w, status, map[string]bool{"backend": up})
}
