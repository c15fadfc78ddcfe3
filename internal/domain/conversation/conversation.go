// Package conversation defines the read-side chat history model. Conversations
// and messages are created by the bot backend; this app only lists, archives,
// and deletes them.
package conversation

import "time"

// Status represents the lifecycle state of a conversation.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Direction indicates who sent a message.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Conversation aggregates the messages exchanged with one WhatsApp contact.
type Conversation struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"business_id"`
	Contact       string    `json:"contact"`
	ContactName   string    `json:"contact_name,omitempty"`
	Status        Status    `json:"status"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// Message is a single inbound or outbound WhatsApp message.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Direction      Direction `json:"direction"`
	Body           string    `json:"body"`
	Timestamp      time.Time `json:"timestamp"`
}

// MessagePage is one page of a conversation's message history.
type MessagePage struct {
	Messages []Message `json:"messages"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Total    int       `json:"total"`
}
