package api

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Stream event names emitted by the support backend.
const (
	EventSupportMessage = "support-message"
	EventReady          = "ready"
)

// StreamEvent is one named server-sent event from the conversation
// stream.
type StreamEvent struct {
	Name string
	Data string
}

// StreamConversation connects to the conversation's server-sent event
// stream and delivers events until the stream drops or ctx is
// cancelled. The returned channel is closed on either. Connection
// failures are returned synchronously so the caller can fall back to
// polling.
func (c *Client) StreamConversation(ctx context.Context, conversationID int64) (<-chan StreamEvent, error) {
	path := "/conversations/" + strconv.FormatInt(conversationID, 10) + "/stream"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.supportPath(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, decodeResponse(resp, nil)
	}

	events := make(chan StreamEvent)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		var name string
		var data strings.Builder
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if name != "" || data.Len() > 0 {
					ev := StreamEvent{Name: name, Data: strings.TrimSuffix(data.String(), "\n")}
					select {
					case events <- ev:
					case <-ctx.Done():
						return
					}
				}
				name = ""
				data.Reset()
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
				data.WriteString("\n")
			case strings.HasPrefix(line, ":"):
				// comment/keepalive
			}
		}
	}()
	return events, nil
}
