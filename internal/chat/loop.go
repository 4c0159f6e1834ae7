package chat

import (
	"context"
	"time"

	"github.com/suhome/storefront/internal/api"
)

// Run drives synchronization until ctx is cancelled: an immediate
// hydration, then fixed-interval polling while the panel is open and
// the push stream is down. The stream, once connected, supersedes
// polling entirely; on stream error polling resumes. Both paths stay
// quiet while the circuit breaker is tripped.
func (c *Chat) Run(ctx context.Context) {
	if err := c.Hydrate(ctx); err == nil {
		c.LinkIfNeeded(ctx)
	}
	c.ensureStream(ctx)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.shouldPoll() {
				if err := c.Hydrate(ctx); err == nil {
					c.LinkIfNeeded(ctx)
				}
			}
			c.ensureStream(ctx)
		}
	}
}

func (c *Chat) shouldPoll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open && c.conversationID > 0 && c.availability == Available && !c.streaming
}

// ensureStream connects the push channel when a conversation exists,
// the backend is available, and no stream is already up. Events simply
// trigger a hydration; the stream carries no payload the fetch would
// not return.
func (c *Chat) ensureStream(ctx context.Context) {
	c.mu.Lock()
	if c.streaming || c.conversationID == 0 || c.availability == Unavailable {
		c.mu.Unlock()
		return
	}
	convID := c.conversationID
	c.streaming = true
	c.mu.Unlock()

	events, err := c.api.StreamConversation(ctx, convID)
	if err != nil {
		c.mu.Lock()
		c.streaming = false
		c.mu.Unlock()
		return
	}

	go func() {
		defer func() {
			c.mu.Lock()
			c.streaming = false
			c.mu.Unlock()
		}()
		for ev := range events {
			switch ev.Name {
			case api.EventSupportMessage, api.EventReady:
				_ = c.Hydrate(ctx)
			}
		}
	}()
}
