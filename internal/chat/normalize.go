package chat

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
)

// normalizeMessage maps a wire message onto the view model. activeID is
// the current conversation identity, used to attribute messages whose
// sender field is missing.
func normalizeMessage(m api.WireMessage, activeID string) models.ChatMessage {
	senderID := m.SenderID.String()
	if senderID == "" {
		senderID = m.UserID.String()
	}

	from := m.From
	if from == "" {
		if senderID != "" && senderID == activeID {
			from = models.FromUser
		} else {
			from = models.FromAssistant
		}
	}
	switch from {
	case "support":
		from = models.FromAssistant
	case "customer":
		from = models.FromUser
	}

	ts := m.Timestamp
	if ts == 0 && m.CreatedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, m.CreatedAt); err == nil {
			ts = parsed.UnixMilli()
		}
	}
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}

	id := m.ID.String()
	if id == "" {
		id = m.MessageID.String()
	}
	if id == "" {
		id = fmt.Sprintf("%s-%d", from, ts)
	}

	text := m.Text
	if text == "" {
		text = m.MessageText
	}

	if senderID == "" {
		senderID = activeID
	}

	return models.ChatMessage{
		ID:          id,
		From:        from,
		SenderID:    senderID,
		Text:        text,
		Timestamp:   ts,
		Attachments: normalizeAttachments(m.Attachments, from),
	}
}

func normalizeMessages(in []api.WireMessage, activeID string) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(in))
	for _, m := range in {
		out = append(out, normalizeMessage(m, activeID))
	}
	return out
}

func normalizeAttachments(in []api.WireAttachment, from string) []models.ChatAttachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.ChatAttachment, 0, len(in))
	for _, att := range in {
		id := att.ID.String()
		if id == "" {
			id = fmt.Sprintf("%s-att-%04d", from, rand.Intn(10000))
		}
		name := att.FileName
		if name == "" {
			name = att.Filename
		}
		if name == "" {
			name = "Attachment"
		}
		mime := att.MimeType
		if mime == "" {
			mime = att.Type
		}
		url := att.URL
		if url == "" {
			url = att.Path
		}
		out = append(out, models.ChatAttachment{
			ID:       id,
			FileName: name,
			MimeType: mime,
			URL:      url,
		})
	}
	return out
}
