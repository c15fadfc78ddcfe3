package cache

import "fmt"

// Key builders for the cached entity namespaces. List keys are invalidated on
// any create/update/delete of the type; detail keys on mutation of that id.

// BusinessList is the key for the businesses list.
func BusinessList() string { return "businesses" }

// Business is the detail key for one business.
func Business(id string) string { return "business:" + id }

// WhatsApp is the key for a business's WhatsApp config.
func WhatsApp(businessID string) string { return "whatsapp:" + businessID }

// Tone is the key for a business's tone.
func Tone(businessID string) string { return "tone:" + businessID }

// Conversations is the key for a business's conversation list.
func Conversations(businessID string) string { return "conversations:" + businessID }

// Integration is the key for one business's integration config.
func Integration(provider, businessID string) string {
	return fmt.Sprintf("integration:%s:%s", provider, businessID)
}
