package chat

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
)

// Send posts a message optimistically: it appears in the list at once,
// is swapped in place for the server-confirmed record on success, and
// is removed entirely on failure (with the error recorded until the
// next clean success). Attachments beyond the configured bound are
// dropped; their staged local references never outlive a failed send.
func (c *Chat) Send(ctx context.Context, text string, uploads []api.Upload) error {
	text = strings.TrimSpace(text)
	if text == "" && len(uploads) == 0 {
		return nil
	}
	if len(uploads) > c.maxAttachments {
		uploads = uploads[:c.maxAttachments]
	}

	now := time.Now().UnixMilli()
	staged := make([]models.ChatAttachment, 0, len(uploads))
	for _, up := range uploads {
		staged = append(staged, models.ChatAttachment{
			ID:       fmt.Sprintf("local-%s-%04d", up.FileName, rand.Intn(10000)),
			FileName: up.FileName,
			MimeType: up.MimeType,
			IsLocal:  true,
		})
	}

	display := text
	if display == "" {
		display = "Sending..."
	}

	c.mu.Lock()
	optimistic := models.ChatMessage{
		ID:          fmt.Sprintf("user-%d-%03d", now, rand.Intn(1000)),
		From:        models.FromUser,
		SenderID:    c.activeUserIDLocked(),
		Text:        display,
		Timestamp:   now,
		Attachments: staged,
		Pending:     true,
	}
	c.messages = append(c.messages, optimistic)
	c.sending++
	input := api.SendMessageInput{
		UserID:      c.activeUserIDLocked(),
		Email:       c.identityEmailLocked(),
		Name:        c.identityNameLocked(),
		Text:        text,
		Attachments: uploads,
	}
	c.mu.Unlock()

	payload, err := c.api.SendMessage(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending--

	if err != nil {
		for i := range c.messages {
			if c.messages[i].ID == optimistic.ID {
				c.messages = append(c.messages[:i], c.messages[i+1:]...)
				break
			}
		}
		c.syncErr = err.Error()
		c.lastErr = err.Error()
		return err
	}

	if payload.ConversationID > 0 {
		c.conversationID = payload.ConversationID
	}
	if payload.UserID > 0 {
		c.serverUserID = payload.UserID
	}
	if payload.Message != nil {
		confirmed := normalizeMessage(*payload.Message, c.activeUserIDLocked())
		for i := range c.messages {
			if c.messages[i].ID == optimistic.ID {
				c.messages[i] = confirmed
				break
			}
		}
	}
	c.syncErr = ""
	return nil
}
