package business

import "errors"

// WhatsAppConfig holds the WhatsApp Business API credentials for a business.
// Each business has at most one config.
type WhatsAppConfig struct {
	BusinessID    string `json:"business_id"`
	PhoneNumberID string `json:"phone_number_id"`
	AccessToken   string `json:"access_token"`
	VerifyToken   string `json:"verify_token,omitempty"`
	WebhookURL    string `json:"webhook_url,omitempty"`
}

// WhatsAppConfigRequest is the input for creating or replacing a business's
// WhatsApp config.
type WhatsAppConfigRequest struct {
	PhoneNumberID string `json:"phone_number_id"`
	AccessToken   string `json:"access_token"`
	VerifyToken   string `json:"verify_token,omitempty"`
	WebhookURL    string `json:"webhook_url,omitempty"`
}

// Validate checks that the request has all required fields.
func (r *WhatsAppConfigRequest) Validate() error {
	if r.PhoneNumberID == "" {
		return errors.New("phone_number_id is required")
	}
	if r.AccessToken == "" {
		return errors.New("access_token is required")
	}
	return nil
}
