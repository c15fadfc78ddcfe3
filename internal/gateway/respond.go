package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/botdesk/botdesk/internal/api"
)

// envelope mirrors the backend response shape so the browser UI can use the
// same decoding path for direct and gateway calls.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Timestamp string `json:"timestamp"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, envelope{Success: true, Data: data})
}

func writeErr(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeEnvelope(w, status, envelope{Success: false, Error: err.Error(), Code: code})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	env.Timestamp = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to write gateway response", "error", err)
	}
}

// statusFor maps client errors back onto HTTP statuses. Backend failures
// keep the status (and kind) the classifier assigned; anything else the
// handlers surface is a rejected input.
func statusFor(err error) (int, string) {
	if e, ok := api.AsError(err); ok {
		return e.Status, string(e.Kind)
	}
	return http.StatusBadRequest, string(api.KindValidation)
}

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request, bodyLimit int64) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		status := http.StatusBadRequest
		msg := "invalid request body"
		if err.Error() == "http: request body too large" {
			status = http.StatusRequestEntityTooLarge
			msg = "request body too large"
		}
		writeEnvelope(w, status, envelope{Success: false, Error: msg, Code: string(api.KindValidation)})
		return v, false
	}
	return v, true
}
