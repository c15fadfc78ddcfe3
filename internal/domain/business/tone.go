package business

import "errors"

// Tone is the natural-language instruction block controlling the AI response
// style of a business's bot. A business has at most one active tone.
type Tone struct {
	BusinessID       string `json:"business_id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ToneInstructions string `json:"tone_instructions"`
}

// ToneRequest is the input for creating or replacing a business's tone.
type ToneRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ToneInstructions string `json:"tone_instructions"`
}

// Validate checks that the request has all required fields.
func (r *ToneRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.ToneInstructions == "" {
		return errors.New("tone_instructions is required")
	}
	return nil
}
