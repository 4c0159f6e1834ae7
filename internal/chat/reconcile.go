package chat

import "github.com/suhome/storefront/internal/models"

// Reconcile merges locally held messages with a server payload. Server
// copies win for matching ids; local optimistic messages the server has
// not confirmed yet are preserved, never clobbered by a concurrent
// hydration. An empty server payload keeps the local view (stale beats
// blank). Pure, so overlapping hydrations stay last-write-wins without
// losing outstanding sends.
func Reconcile(local, server []models.ChatMessage) []models.ChatMessage {
	if len(server) == 0 {
		return local
	}

	confirmed := make(map[string]bool, len(server))
	for _, msg := range server {
		confirmed[msg.ID] = true
	}

	out := make([]models.ChatMessage, 0, len(server)+len(local))
	out = append(out, server...)
	for _, msg := range local {
		if msg.Pending && !confirmed[msg.ID] {
			out = append(out, msg)
		}
	}
	return out
}
