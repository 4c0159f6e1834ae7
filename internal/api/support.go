package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// FlexID tolerates backends that emit ids as either numbers or strings.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// WireMessage is a conversation message as the support backend returns
// it. Field aliases cover the shapes observed across backend versions;
// normalization into the view model lives in the chat package.
type WireMessage struct {
	ID          FlexID           `json:"id,omitempty"`
	MessageID   FlexID           `json:"message_id,omitempty"`
	From        string           `json:"from,omitempty"`
	SenderID    FlexID           `json:"sender_id,omitempty"`
	UserID      FlexID           `json:"user_id,omitempty"`
	Text        string           `json:"text,omitempty"`
	MessageText string           `json:"message_text,omitempty"`
	Timestamp   int64            `json:"timestamp,omitempty"`
	CreatedAt   string           `json:"created_at,omitempty"`
	Attachments []WireAttachment `json:"attachments,omitempty"`
}

type WireAttachment struct {
	ID       FlexID `json:"id,omitempty"`
	FileName string `json:"file_name,omitempty"`
	Filename string `json:"filename,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Type     string `json:"type,omitempty"`
	URL      string `json:"url,omitempty"`
	Path     string `json:"path,omitempty"`
}

// ConversationPayload is the response of the conversation fetch and the
// message send.
type ConversationPayload struct {
	ConversationID int64         `json:"conversation_id"`
	UserID         int64         `json:"user_id,omitempty"`
	Messages       []WireMessage `json:"messages,omitempty"`
	Message        *WireMessage  `json:"message,omitempty"`
}

// ConversationQuery identifies the conversation to fetch. UserID is the
// active identity: an authenticated id, a server-assigned id, or a guest
// token.
type ConversationQuery struct {
	UserID string
	Email  string
	Name   string
}

func (q ConversationQuery) values() url.Values {
	params := url.Values{}
	if q.UserID != "" {
		params.Set("user_id", q.UserID)
	}
	if q.Email != "" {
		params.Set("email", q.Email)
	}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	return params
}

// Conversation fetches (or lazily creates) the conversation for the
// given identity.
func (c *Client) Conversation(ctx context.Context, q ConversationQuery) (*ConversationPayload, error) {
	var out ConversationPayload
	u := c.supportPath("/conversation?" + q.values().Encode())
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessageInput carries an outgoing message. Attachments switch the
// request to multipart.
type SendMessageInput struct {
	UserID      string
	Email       string
	Name        string
	Text        string
	Attachments []Upload
}

// Upload is a staged outgoing attachment.
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

// SendMessage posts a user message, JSON for plain text and multipart
// when attachments are present.
func (c *Client) SendMessage(ctx context.Context, input SendMessageInput) (*ConversationPayload, error) {
	if len(input.Attachments) == 0 {
		body := map[string]string{
			"user_id": input.UserID,
			"text":    input.Text,
			"email":   input.Email,
			"name":    input.Name,
		}
		var out ConversationPayload
		if err := c.sendJSON(ctx, http.MethodPost, c.supportPath("/message"), body, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	fields := map[string]string{
		"user_id": input.UserID,
		"email":   input.Email,
		"name":    input.Name,
		"text":    input.Text,
	}
	for key, value := range fields {
		if value == "" && key != "text" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to build multipart request: %w", err)
		}
	}
	for _, att := range input.Attachments {
		part, err := writer.CreateFormFile("attachments", att.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to build multipart request: %w", err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, fmt.Errorf("failed to build multipart request: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.supportPath("/message"), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out ConversationPayload
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkConversation attaches an anonymous conversation to an
// authenticated user. Safe to call repeatedly with the same user id.
func (c *Client) LinkConversation(ctx context.Context, conversationID int64, userID int64, email, name string) (*ConversationPayload, error) {
	body := map[string]any{
		"user_id": userID,
		"email":   email,
		"name":    name,
	}
	path := "/conversations/" + strconv.FormatInt(conversationID, 10) + "/identify"
	var out ConversationPayload
	if err := c.sendJSON(ctx, http.MethodPost, c.supportPath(path), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
