package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/models"
)

func msg(id, from, text string) models.ChatMessage {
	return models.ChatMessage{ID: id, From: from, Text: text}
}

func pending(id, text string) models.ChatMessage {
	m := msg(id, models.FromUser, text)
	m.Pending = true
	return m
}

func TestReconcileEmptyServerKeepsLocal(t *testing.T) {
	local := []models.ChatMessage{msg("1", models.FromAssistant, "hi")}

	assert.Equal(t, local, Reconcile(local, nil))
	assert.Equal(t, local, Reconcile(local, []models.ChatMessage{}))
}

func TestReconcileServerCopiesWin(t *testing.T) {
	local := []models.ChatMessage{msg("1", models.FromUser, "draft")}
	server := []models.ChatMessage{msg("1", models.FromUser, "final"), msg("2", models.FromAssistant, "reply")}

	out := Reconcile(local, server)

	require.Len(t, out, 2)
	assert.Equal(t, "final", out[0].Text)
	assert.Equal(t, "reply", out[1].Text)
}

func TestReconcilePreservesPendingOptimistic(t *testing.T) {
	local := []models.ChatMessage{
		msg("1", models.FromAssistant, "hello"),
		pending("user-123", "on its way"),
	}
	server := []models.ChatMessage{msg("1", models.FromAssistant, "hello")}

	out := Reconcile(local, server)

	require.Len(t, out, 2)
	assert.Equal(t, "user-123", out[1].ID)
	assert.True(t, out[1].Pending)
}

func TestReconcileDropsConfirmedPending(t *testing.T) {
	local := []models.ChatMessage{pending("42", "sent")}
	server := []models.ChatMessage{msg("42", models.FromUser, "sent")}

	out := Reconcile(local, server)

	require.Len(t, out, 1)
	assert.False(t, out[0].Pending)
}

func TestReconcileDropsNonPendingLocalExtras(t *testing.T) {
	// Non-pending local messages missing from the payload were deleted
	// server-side; only optimistic sends survive.
	local := []models.ChatMessage{msg("old", models.FromAssistant, "gone")}
	server := []models.ChatMessage{msg("new", models.FromAssistant, "fresh")}

	out := Reconcile(local, server)

	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].ID)
}
