package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/suhome/storefront/internal/config"
)

// Error is a server application error: a non-2xx response carrying a
// JSON {"error": "..."} body. The message is surfaced verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNetwork reports whether err is a transport-level failure (offline,
// DNS, refused connection) as opposed to an application error response.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	return !errors.As(err, &apiErr)
}

// Client talks to the storefront REST backend.
type Client struct {
	client *http.Client
	// streamClient has no timeout: the event stream is long-lived.
	streamClient *http.Client
	baseURL      string
	supportURL   string
	log          *logrus.Entry
}

// NewClient creates a client for the configured backend.
func NewClient(cfg *config.Config, log *logrus.Entry) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		streamClient: &http.Client{},
		baseURL:      strings.TrimRight(cfg.API.BaseURL, "/"),
		supportURL:   strings.TrimRight(cfg.Support.BaseURL, "/"),
		log:          log,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) supportPath(path string) string {
	return c.supportURL + path
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(http.StatusText(resp.StatusCode))
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			message = body.Error
		}
		return &Error{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
