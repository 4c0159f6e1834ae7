package mockapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

type conversation struct {
	ID       int64         `json:"conversation_id"`
	UserID   int64         `json:"user_id,omitempty"`
	Messages []wireMessage `json:"messages"`

	subscribers map[chan sse.Event]struct{}
}

type wireMessage struct {
	ID          int64            `json:"id"`
	From        string           `json:"from"`
	SenderID    string           `json:"sender_id,omitempty"`
	Text        string           `json:"text"`
	Timestamp   int64            `json:"timestamp"`
	Attachments []wireAttachment `json:"attachments,omitempty"`
}

type wireAttachment struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
}

// conversationForLocked finds or creates the conversation for an
// identity key, resolving registered emails to their account id.
func (s *Server) conversationForLocked(userKey, email string) *conversation {
	if userKey == "" {
		userKey = "email:" + email
	}
	if id, ok := s.convByUser[userKey]; ok {
		return s.conversations[id]
	}

	s.nextConvID++
	conv := &conversation{
		ID:          s.nextConvID,
		Messages:    []wireMessage{},
		subscribers: make(map[chan sse.Event]struct{}),
	}
	if email != "" {
		for _, acct := range s.users {
			if strings.EqualFold(acct.Email, email) {
				conv.UserID = acct.ID
			}
		}
	}
	if id, err := strconv.ParseInt(userKey, 10, 64); err == nil && id > 0 {
		conv.UserID = id
	}
	s.conversations[conv.ID] = conv
	s.convByUser[userKey] = conv.ID
	return conv
}

func (s *Server) getConversation(c *gin.Context) {
	userKey := c.Query("user_id")
	email := c.Query("email")
	if userKey == "" && email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or email is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv := s.conversationForLocked(userKey, email)
	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conv.ID,
		"user_id":         conv.UserID,
		"messages":        conv.Messages,
	})
}

func (s *Server) postMessage(c *gin.Context) {
	var userKey, email, text string
	var attachments []wireAttachment

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		userKey = c.PostForm("user_id")
		email = c.PostForm("email")
		text = c.PostForm("text")
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart payload"})
			return
		}
		for i, file := range form.File["attachments"] {
			attachments = append(attachments, wireAttachment{
				ID:       int64(i + 1),
				FileName: file.Filename,
				MimeType: file.Header.Get("Content-Type"),
				URL:      "/uploads/" + file.Filename,
			})
		}
	} else {
		var body struct {
			UserID string `json:"user_id"`
			Email  string `json:"email"`
			Text   string `json:"text"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message payload"})
			return
		}
		userKey, email, text = body.UserID, body.Email, body.Text
	}

	if userKey == "" && email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or email is required"})
		return
	}
	if strings.TrimSpace(text) == "" && len(attachments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}

	s.mu.Lock()
	conv := s.conversationForLocked(userKey, email)
	s.nextMsgID++
	msg := wireMessage{
		ID:          s.nextMsgID,
		From:        "customer",
		SenderID:    userKey,
		Text:        text,
		Timestamp:   time.Now().UnixMilli(),
		Attachments: attachments,
	}
	conv.Messages = append(conv.Messages, msg)

	s.nextMsgID++
	reply := wireMessage{
		ID:        s.nextMsgID,
		From:      "support",
		Text:      "Thanks for reaching out! An agent will reply shortly.",
		Timestamp: time.Now().UnixMilli(),
	}
	conv.Messages = append(conv.Messages, reply)
	s.broadcastLocked(conv, sse.Event{Event: "support-message", Data: fmt.Sprintf("%d", reply.ID)})
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"conversation_id": conv.ID,
		"user_id":         conv.UserID,
		"message":         msg,
	})
}

func (s *Server) identifyConversation(c *gin.Context) {
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}
	var body struct {
		UserID int64  `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[convID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	conv.UserID = body.UserID
	s.convByUser[strconv.FormatInt(body.UserID, 10)] = conv.ID
	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conv.ID,
		"user_id":         conv.UserID,
	})
}

func (s *Server) broadcastLocked(conv *conversation, event sse.Event) {
	for ch := range conv.subscribers {
		select {
		case ch <- event:
		default:
			// slow subscriber, drop rather than block the sender
		}
	}
}

func (s *Server) streamConversation(c *gin.Context) {
	convID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	s.mu.Lock()
	conv, ok := s.conversations[convID]
	if !ok {
		s.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	events := make(chan sse.Event, 8)
	conv.subscribers[events] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(conv.subscribers, events)
		s.mu.Unlock()
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	if err := sse.Encode(c.Writer, sse.Event{Event: "ready", Data: "ok"}); err != nil {
		return
	}
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case event := <-events:
			_ = sse.Encode(w, event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
