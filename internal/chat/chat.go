package chat

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

// SupportAPI is the slice of the backend client the chat needs.
type SupportAPI interface {
	Conversation(ctx context.Context, q api.ConversationQuery) (*api.ConversationPayload, error)
	SendMessage(ctx context.Context, input api.SendMessageInput) (*api.ConversationPayload, error)
	LinkConversation(ctx context.Context, conversationID, userID int64, email, name string) (*api.ConversationPayload, error)
	StreamConversation(ctx context.Context, conversationID int64) (<-chan api.StreamEvent, error)
}

// Availability is the chat transport circuit breaker. Once a hydration
// fails with a network-level error the chat goes Unavailable: polling
// and stream connections are suspended until an identity change or an
// explicit retry. There is deliberately no retry-on-a-timer.
type Availability int

const (
	Available Availability = iota
	Unavailable
)

// DefaultPollInterval matches the original widget's cadence.
const DefaultPollInterval = 4500 * time.Millisecond

// DefaultMaxAttachments bounds files per outgoing message.
const DefaultMaxAttachments = 3

// Chat maintains one support conversation for the current identity:
// optimistic sends, reconciliation against server truth via polling
// and the push stream, unread counting while the panel is closed.
type Chat struct {
	mu  sync.Mutex
	api SupportAPI
	log *logrus.Entry

	clientToken    string
	user           *models.User
	identity       string
	serverUserID   int64
	conversationID int64

	messages     []models.ChatMessage
	open         bool
	sending      int
	unread       int
	syncErr      string
	lastErr      string
	hasHydrated  bool
	loading      bool
	availability Availability
	streaming    bool

	pollInterval   time.Duration
	maxAttachments int
}

// Options tune the sync cadence; zero values take the defaults.
type Options struct {
	PollInterval   time.Duration
	MaxAttachments int
}

// New creates the chat service. The guest client token is read from
// durable storage, or generated and persisted immediately so reloads
// reuse it.
func New(client SupportAPI, store *storage.Store, log *logrus.Entry, user *models.User, opts Options) *Chat {
	token := storage.GetJSON(store, storage.KeyChatToken, "")
	if token == "" {
		token = "g-" + uuid.NewString()
		store.SetJSON(storage.KeyChatToken, token)
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.MaxAttachments <= 0 {
		opts.MaxAttachments = DefaultMaxAttachments
	}

	c := &Chat{
		api:            client,
		log:            log,
		clientToken:    token,
		pollInterval:   opts.PollInterval,
		maxAttachments: opts.MaxAttachments,
	}
	c.user = user
	c.identity = c.identityKeyLocked()
	return c
}

func (c *Chat) identityKeyLocked() string {
	if c.user != nil && c.user.ID > 0 {
		return "user:" + strconv.FormatInt(c.user.ID, 10)
	}
	return "guest:" + c.clientToken
}

// activeUserIDLocked resolves the conversation identity: authenticated
// id, else the cached server-assigned id, else the guest token.
func (c *Chat) activeUserIDLocked() string {
	if c.user != nil && c.user.ID > 0 {
		return strconv.FormatInt(c.user.ID, 10)
	}
	if c.serverUserID > 0 {
		return strconv.FormatInt(c.serverUserID, 10)
	}
	return c.clientToken
}

func (c *Chat) identityEmailLocked() string {
	if c.user != nil && c.user.Email != "" {
		return c.user.Email
	}
	return c.clientToken + "@chat.local"
}

func (c *Chat) identityNameLocked() string {
	if c.user != nil && c.user.Name != "" {
		return c.user.Name
	}
	return "Guest"
}

// SetUser binds the conversation to a new identity. Any change discards
// all conversation state; the next hydration starts from scratch. This
// also resets the circuit breaker.
func (c *Chat) SetUser(user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = user
	next := c.identityKeyLocked()
	if next == c.identity {
		return
	}
	c.identity = next
	c.serverUserID = 0
	c.conversationID = 0
	c.messages = nil
	c.hasHydrated = false
	c.syncErr = ""
	c.lastErr = ""
	c.unread = 0
	c.availability = Available
}

// Retry resets the circuit breaker without touching conversation
// state. Wire it to an explicit user action, never a timer.
func (c *Chat) Retry() {
	c.mu.Lock()
	c.availability = Available
	c.mu.Unlock()
}

// Open marks the panel open and clears the unread counter.
func (c *Chat) Open() {
	c.mu.Lock()
	c.open = true
	c.unread = 0
	c.mu.Unlock()
}

// Close marks the panel closed; unread counting resumes.
func (c *Chat) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

// Toggle flips the panel state.
func (c *Chat) Toggle() {
	c.mu.Lock()
	c.open = !c.open
	if c.open {
		c.unread = 0
	}
	c.mu.Unlock()
}

// Messages returns a copy of the conversation.
func (c *Chat) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Unread returns the number of support messages that arrived while the
// panel was closed.
func (c *Chat) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// HasHydrated reports whether at least one hydration attempt finished
// for the current identity.
func (c *Chat) HasHydrated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasHydrated
}

// Availability returns the circuit breaker state.
func (c *Chat) Availability() Availability {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.availability
}

// ConversationID returns the server conversation id, 0 before first
// contact.
func (c *Chat) ConversationID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversationID
}

// SyncError returns the most recent hydration/send error, empty after
// a clean success.
func (c *Chat) SyncError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncErr
}

// LastError returns the last recorded error; kept until a clear
// success.
func (c *Chat) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// IsSending reports whether a send is outstanding.
func (c *Chat) IsSending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending > 0
}

// IsLoading reports whether a first hydration is in flight.
func (c *Chat) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
