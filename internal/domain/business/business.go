// Package business defines the business domain model and its per-business
// WhatsApp and tone settings.
package business

import (
	"errors"
	"time"
)

// Status represents the lifecycle state of a business.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ValidStatuses is the set of all valid business statuses.
var ValidStatuses = map[Status]bool{
	StatusActive:   true,
	StatusInactive: true,
}

// Business represents a company using the WhatsApp bot platform.
type Business struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest is the input for registering a new business.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Status != "" && !ValidStatuses[r.Status] {
		return errors.New("invalid status: must be active or inactive")
	}
	return nil
}

// UpdateRequest is the input for updating an existing business.
// Zero-valued fields are left unchanged by the backend.
type UpdateRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// Validate checks that the UpdateRequest carries only valid values.
func (r *UpdateRequest) Validate() error {
	if r.Status != "" && !ValidStatuses[r.Status] {
		return errors.New("invalid status: must be active or inactive")
	}
	return nil
}
