package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/config"
	"github.com/suhome/storefront/internal/mockapi"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func newTestClient(t *testing.T) (*Client, func()) {
	t.Helper()
	srv := mockapi.NewServer(testLog())
	ts := httptest.NewServer(srv.Router())

	cfg := &config.Config{}
	cfg.API.BaseURL = ts.URL + "/api"
	cfg.API.Timeout = 5 * time.Second
	cfg.Support.BaseURL = ts.URL + "/api/support"

	return NewClient(cfg, testLog()), ts.Close
}

func TestLoginSuccess(t *testing.T) {
	client, done := newTestClient(t)
	defer done()

	resp, err := client.Login(context.Background(), LoginInput{
		Email:    "demo@example.com",
		Password: "password",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "customer", resp.User.Role)
}

func TestLoginBadCredentialsSurfacesServerMessage(t *testing.T) {
	client, done := newTestClient(t)
	defer done()

	_, err := client.Login(context.Background(), LoginInput{
		Email:    "demo@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.False(t, IsNetwork(err))
}

func TestLoginInvalidInputRejectedLocally(t *testing.T) {
	client, done := newTestClient(t)
	defer done()

	_, err := client.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid login input")
}

func TestNetworkErrorIsNotAPIError(t *testing.T) {
	client, done := newTestClient(t)
	done() // backend gone

	_, err := client.Products(context.Background())

	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestProductsAndStock(t *testing.T) {
	client, done := newTestClient(t)
	defer done()
	ctx := context.Background()

	products, err := client.Products(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	first := products[0]
	require.NoError(t, client.UpdateStock(ctx, first.ID, 1))

	refreshed, err := client.ProductByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Stock-1, refreshed.Stock)

	err = client.UpdateStock(ctx, first.ID, first.Stock+100)
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not enough stock", apiErr.Message)
}

func TestWishlistRoundTrip(t *testing.T) {
	client, done := newTestClient(t)
	defer done()
	ctx := context.Background()
	ident := WishlistIdentity{UserID: 1, Email: "demo@example.com"}

	require.NoError(t, client.AddWishlistItem(ctx, ident, "p-2"))

	items, err := client.Wishlist(ctx, ident)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-2", items[0].ID)
	assert.Equal(t, "Ceramic Pour-Over Set", items[0].Name)

	require.NoError(t, client.RemoveWishlistItem(ctx, ident, "p-2"))
	items, err = client.Wishlist(ctx, ident)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUserOrders(t *testing.T) {
	client, done := newTestClient(t)
	defer done()

	rows, err := client.UserOrders(context.Background(), 1)

	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, int64(1), rows[0].OrderID)
	assert.Equal(t, "in_transit", rows[0].Status)
	require.NotEmpty(t, rows[0].Items)
}

func TestConversationFlow(t *testing.T) {
	client, done := newTestClient(t)
	defer done()
	ctx := context.Background()

	conv, err := client.Conversation(ctx, ConversationQuery{UserID: "g-test-token"})
	require.NoError(t, err)
	assert.NotZero(t, conv.ConversationID)
	assert.Empty(t, conv.Messages)

	sent, err := client.SendMessage(ctx, SendMessageInput{UserID: "g-test-token", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, conv.ConversationID, sent.ConversationID)
	require.NotNil(t, sent.Message)
	assert.Equal(t, "hello", sent.Message.Text)

	// The fetch now returns the customer message plus the auto reply.
	refreshed, err := client.Conversation(ctx, ConversationQuery{UserID: "g-test-token"})
	require.NoError(t, err)
	assert.Len(t, refreshed.Messages, 2)

	linked, err := client.LinkConversation(ctx, conv.ConversationID, 1, "demo@example.com", "Demo")
	require.NoError(t, err)
	assert.Equal(t, int64(1), linked.UserID)
}

func TestSendMessageMultipart(t *testing.T) {
	client, done := newTestClient(t)
	defer done()

	sent, err := client.SendMessage(context.Background(), SendMessageInput{
		UserID: "g-multipart",
		Text:   "see attached",
		Attachments: []Upload{
			{FileName: "receipt.png", MimeType: "image/png", Data: []byte("fake-png")},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, sent.Message)
	require.Len(t, sent.Message.Attachments, 1)
	assert.Equal(t, "receipt.png", sent.Message.Attachments[0].FileName)
}

func TestFlexIDAcceptsStringsAndNumbers(t *testing.T) {
	var m WireMessage
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "sender_id": "abc"}`), &m))
	assert.Equal(t, "42", m.ID.String())
	assert.Equal(t, "abc", m.SenderID.String())
}
