package chat

import (
	"context"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
)

// Hydrate fetches server truth for the current identity and reconciles
// it into local state. Previously displayed messages stay visible while
// the refresh is in flight and on application-level failure
// (stale-while-revalidate); a network-level failure trips the circuit
// breaker. Overlapping hydrations are allowed: last write wins, with
// outstanding optimistic sends protected by Reconcile.
func (c *Chat) Hydrate(ctx context.Context) error {
	c.mu.Lock()
	if c.availability == Unavailable {
		c.mu.Unlock()
		return nil
	}
	if !c.hasHydrated {
		c.loading = true
	}
	identity := c.identity
	query := api.ConversationQuery{
		UserID: c.activeUserIDLocked(),
		Email:  c.identityEmailLocked(),
		Name:   c.identityNameLocked(),
	}
	c.mu.Unlock()

	payload, err := c.api.Conversation(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if c.identity != identity {
		// identity switched while the fetch was in flight
		return nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		if api.IsNetwork(err) {
			c.availability = Unavailable
		}
		c.syncErr = err.Error()
		c.lastErr = err.Error()
		c.hasHydrated = true
		return err
	}

	if payload.UserID > 0 {
		c.serverUserID = payload.UserID
	}
	if payload.ConversationID > 0 {
		c.conversationID = payload.ConversationID
	}

	incoming := normalizeMessages(payload.Messages, c.activeUserIDLocked())
	if !c.open {
		existing := make(map[string]bool, len(c.messages))
		for _, msg := range c.messages {
			existing[msg.ID] = true
		}
		for _, msg := range incoming {
			if msg.From != models.FromUser && !existing[msg.ID] {
				c.unread++
			}
		}
	}
	c.messages = Reconcile(c.messages, incoming)
	c.syncErr = ""
	c.lastErr = ""
	c.hasHydrated = true
	return nil
}

// LinkIfNeeded attaches the anonymous conversation to the authenticated
// user. It only fires while the cached server-assigned user id differs
// from the authenticated id, so duplicate calls are harmless.
func (c *Chat) LinkIfNeeded(ctx context.Context) {
	c.mu.Lock()
	if c.conversationID == 0 || c.user == nil || c.user.ID <= 0 || c.serverUserID == c.user.ID {
		c.mu.Unlock()
		return
	}
	convID := c.conversationID
	userID := c.user.ID
	email := c.user.Email
	name := c.user.Name
	c.mu.Unlock()

	payload, err := c.api.LinkConversation(ctx, convID, userID, email, name)
	if err != nil {
		c.log.WithError(err).Warn("support conversation link failed")
		return
	}

	c.mu.Lock()
	if payload != nil && payload.UserID > 0 {
		c.serverUserID = payload.UserID
	} else {
		c.serverUserID = userID
	}
	c.mu.Unlock()
}
