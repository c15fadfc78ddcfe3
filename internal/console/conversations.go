package console

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/cache"
	"github.com/botdesk/botdesk/internal/domain/conversation"
)

// ConversationClient reads chat history and archives or deletes
// conversations. Messages themselves are produced by the bot backend; this
// client never writes them.
type ConversationClient struct {
	api   *api.Client
	cache cache.Store
	ttl   time.Duration
}

// List returns a business's conversations, newest activity first.
func (c *ConversationClient) List(ctx context.Context, businessID string) ([]conversation.Conversation, error) {
	if cached, ok := cache.GetJSON[[]conversation.Conversation](ctx, c.cache, cache.Conversations(businessID)); ok {
		return cached, nil
	}

	list, err := api.Call[[]conversation.Conversation](ctx, c.api, http.MethodGet, "/businesses/"+businessID+"/conversations", nil)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	cache.SetJSON(ctx, c.cache, cache.Conversations(businessID), list, c.ttl)
	return list, nil
}

// Messages fetches one page of a conversation's history. Pages are not
// cached: history grows continuously and the page window shifts with it.
func (c *ConversationClient) Messages(ctx context.Context, conversationID string, page, limit int) (*conversation.MessagePage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/conversations/" + conversationID + "/messages"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	pg, err := api.Call[conversation.MessagePage](ctx, c.api, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	return &pg, nil
}

// Archive marks a conversation archived. businessID scopes the list cache to
// invalidate.
func (c *ConversationClient) Archive(ctx context.Context, businessID, conversationID string) error {
	body := map[string]string{"status": string(conversation.StatusArchived)}
	if _, err := c.api.Do(ctx, http.MethodPatch, "/conversations/"+conversationID, body); err != nil {
		return fmt.Errorf("archive conversation %s: %w", conversationID, err)
	}

	cache.Invalidate(ctx, c.cache, cache.Conversations(businessID))
	return nil
}

// Delete permanently removes a conversation and its messages.
func (c *ConversationClient) Delete(ctx context.Context, businessID, conversationID string) error {
	if _, err := c.api.Do(ctx, http.MethodDelete, "/conversations/"+conversationID, nil); err != nil {
		return fmt.Errorf("delete conversation %s: %w", conversationID, err)
	}

	cache.Invalidate(ctx, c.cache, cache.Conversations(businessID))
	return nil
}
