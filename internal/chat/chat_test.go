package chat

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

type fakeSupport struct {
	convPayload *api.ConversationPayload
	convErr     error
	convCalls   int

	sendPayload *api.ConversationPayload
	sendErr     error

	linkCalls   int
	linkPayload *api.ConversationPayload
	linkErr     error
}

func (f *fakeSupport) Conversation(context.Context, api.ConversationQuery) (*api.ConversationPayload, error) {
	f.convCalls++
	if f.convErr != nil {
		return nil, f.convErr
	}
	if f.convPayload == nil {
		return &api.ConversationPayload{}, nil
	}
	return f.convPayload, nil
}

func (f *fakeSupport) SendMessage(context.Context, api.SendMessageInput) (*api.ConversationPayload, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sendPayload == nil {
		return &api.ConversationPayload{}, nil
	}
	return f.sendPayload, nil
}

func (f *fakeSupport) LinkConversation(context.Context, int64, int64, string, string) (*api.ConversationPayload, error) {
	f.linkCalls++
	return f.linkPayload, f.linkErr
}

func (f *fakeSupport) StreamConversation(context.Context, int64) (<-chan api.StreamEvent, error) {
	return nil, errors.New("stream not available")
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store, err := storage.NewStore(afero.NewMemMapFs(), "state", logrus.NewEntry(log))
	require.NoError(t, err)
	return store
}

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestChat(t *testing.T, client SupportAPI, user *models.User) *Chat {
	t.Helper()
	return New(client, newTestStore(t), testLog(), user, Options{})
}

func wire(id, from, text string) api.WireMessage {
	return api.WireMessage{ID: api.FlexID(id), From: from, Text: text, Timestamp: 1}
}

func TestClientTokenPersistsAcrossRestarts(t *testing.T) {
	store := newTestStore(t)
	client := &fakeSupport{}

	first := New(client, store, testLog(), nil, Options{})
	second := New(client, store, testLog(), nil, Options{})

	assert.Equal(t, first.clientToken, second.clientToken)
	assert.Contains(t, first.clientToken, "g-")
}

func TestHydrateAppliesServerTruth(t *testing.T) {
	client := &fakeSupport{convPayload: &api.ConversationPayload{
		ConversationID: 9,
		UserID:         3,
		Messages: []api.WireMessage{
			wire("1", "customer", "hi"),
			wire("2", "support", "hello"),
		},
	}}
	c := newTestChat(t, client, nil)

	require.NoError(t, c.Hydrate(context.Background()))

	assert.Equal(t, int64(9), c.ConversationID())
	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, models.FromUser, messages[0].From)
	assert.Equal(t, models.FromAssistant, messages[1].From)
	assert.True(t, c.HasHydrated())
	assert.Empty(t, c.SyncError())
}

func TestHydrateKeepsStaleMessagesOnAppError(t *testing.T) {
	client := &fakeSupport{convPayload: &api.ConversationPayload{
		ConversationID: 9,
		Messages:       []api.WireMessage{wire("1", "support", "hello")},
	}}
	c := newTestChat(t, client, nil)
	require.NoError(t, c.Hydrate(context.Background()))

	client.convErr = &api.Error{Status: 500, Message: "server exploded"}
	err := c.Hydrate(context.Background())

	require.Error(t, err)
	assert.Len(t, c.Messages(), 1)
	assert.Equal(t, Available, c.Availability())
	assert.Equal(t, "server exploded", c.LastError())
}

func TestNetworkErrorTripsCircuitBreaker(t *testing.T) {
	client := &fakeSupport{convErr: errors.New("dial tcp: connection refused")}
	c := newTestChat(t, client, nil)

	require.Error(t, c.Hydrate(context.Background()))
	assert.Equal(t, Unavailable, c.Availability())

	// Tripped breaker suppresses further fetches.
	calls := client.convCalls
	require.NoError(t, c.Hydrate(context.Background()))
	assert.Equal(t, calls, client.convCalls)

	// Only an explicit retry re-enables them.
	c.Retry()
	client.convErr = nil
	require.NoError(t, c.Hydrate(context.Background()))
	assert.Equal(t, Available, c.Availability())
}

func TestUnreadCountsAssistantMessagesWhileClosed(t *testing.T) {
	client := &fakeSupport{convPayload: &api.ConversationPayload{
		ConversationID: 1,
		Messages: []api.WireMessage{
			wire("1", "support", "hello"),
			wire("2", "customer", "hi"),
		},
	}}
	c := newTestChat(t, client, nil)

	require.NoError(t, c.Hydrate(context.Background()))
	assert.Equal(t, 1, c.Unread())

	// A repeat hydration of the same payload adds nothing.
	require.NoError(t, c.Hydrate(context.Background()))
	assert.Equal(t, 1, c.Unread())

	c.Open()
	assert.Equal(t, 0, c.Unread())

	// While open, new messages do not count as unread.
	client.convPayload.Messages = append(client.convPayload.Messages, wire("3", "support", "more"))
	require.NoError(t, c.Hydrate(context.Background()))
	assert.Equal(t, 0, c.Unread())
}

func TestSendOptimisticThenConfirmed(t *testing.T) {
	client := &fakeSupport{sendPayload: &api.ConversationPayload{
		ConversationID: 4,
		Message:        &api.WireMessage{ID: "srv-1", From: "customer", Text: "hi there", Timestamp: 5},
	}}
	c := newTestChat(t, client, nil)

	require.NoError(t, c.Send(context.Background(), "hi there", nil))

	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "srv-1", messages[0].ID)
	assert.False(t, messages[0].Pending)
	assert.Equal(t, int64(4), c.ConversationID())
}

func TestSendFailureRemovesOptimisticAndRecordsError(t *testing.T) {
	client := &fakeSupport{sendErr: errors.New("connection reset")}
	c := newTestChat(t, client, nil)

	err := c.Send(context.Background(), "hello?", nil)

	require.Error(t, err)
	assert.Empty(t, c.Messages())
	assert.NotEmpty(t, c.LastError())
	assert.False(t, c.IsSending())
}

func TestSendEmptyMessageIsNoop(t *testing.T) {
	client := &fakeSupport{}
	c := newTestChat(t, client, nil)

	require.NoError(t, c.Send(context.Background(), "   ", nil))
	assert.Empty(t, c.Messages())
}

func TestSendCapsAttachments(t *testing.T) {
	client := &fakeSupport{sendPayload: &api.ConversationPayload{}}
	c := newTestChat(t, client, nil)

	uploads := []api.Upload{
		{FileName: "a.png"}, {FileName: "b.png"}, {FileName: "c.png"}, {FileName: "d.png"},
	}
	require.NoError(t, c.Send(context.Background(), "", uploads))

	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Len(t, messages[0].Attachments, DefaultMaxAttachments)
	assert.Equal(t, "Sending...", messages[0].Text)
}

func TestIdentityChangeResetsConversation(t *testing.T) {
	client := &fakeSupport{convPayload: &api.ConversationPayload{
		ConversationID: 2,
		Messages:       []api.WireMessage{wire("1", "support", "hello")},
	}}
	c := newTestChat(t, client, nil)
	require.NoError(t, c.Hydrate(context.Background()))
	require.NotEmpty(t, c.Messages())

	c.SetUser(&models.User{ID: 7, Email: "a@b.c"})

	assert.Empty(t, c.Messages())
	assert.Equal(t, int64(0), c.ConversationID())
	assert.False(t, c.HasHydrated())
	assert.Equal(t, Available, c.Availability())
}

func TestSameIdentityDoesNotReset(t *testing.T) {
	client := &fakeSupport{convPayload: &api.ConversationPayload{
		ConversationID: 2,
		Messages:       []api.WireMessage{wire("1", "support", "hello")},
	}}
	user := &models.User{ID: 7}
	c := newTestChat(t, client, user)
	require.NoError(t, c.Hydrate(context.Background()))

	c.SetUser(&models.User{ID: 7, Name: "Renamed"})

	assert.NotEmpty(t, c.Messages())
	assert.True(t, c.HasHydrated())
}

func TestLinkFiresOnlyWhenServerUserDiffers(t *testing.T) {
	client := &fakeSupport{convPayload: &api.ConversationPayload{
		ConversationID: 2,
		UserID:         99,
	}}
	user := &models.User{ID: 7, Email: "a@b.c", Name: "A"}
	c := newTestChat(t, client, user)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))

	c.LinkIfNeeded(ctx)
	assert.Equal(t, 1, client.linkCalls)

	// Linked: the cached server user id now matches, no more calls.
	c.LinkIfNeeded(ctx)
	assert.Equal(t, 1, client.linkCalls)
}

func TestLinkSkippedForGuests(t *testing.T) {
	client := &fakeSupport{convPayload: &api.ConversationPayload{ConversationID: 2}}
	c := newTestChat(t, client, nil)
	ctx := context.Background()
	require.NoError(t, c.Hydrate(ctx))

	c.LinkIfNeeded(ctx)

	assert.Equal(t, 0, client.linkCalls)
}
