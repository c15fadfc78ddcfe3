package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the JSON wrapper returned by every backend endpoint.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	Code      string          `json:"code,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Decode unmarshals the envelope's data payload into v.
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decode envelope data: %w", err)
	}
	return nil
}

// failureMessage returns the best human-readable message carried by a
// failure envelope, preferring the error field over the message field.
func (e *Envelope) failureMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
