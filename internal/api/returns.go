package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/suhome/storefront/internal/models"
)

// RequestReturn files a return request for a delivered order item.
func (c *Client) RequestReturn(ctx context.Context, userID, orderItemID int64, reason string) (*models.ReturnRequest, error) {
	body := map[string]any{
		"user_id":       userID,
		"order_item_id": orderItemID,
	}
	if reason != "" {
		body["reason"] = reason
	}
	var out models.ReturnRequest
	if err := c.sendJSON(ctx, http.MethodPost, c.url("/returns"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserReturnRequests lists a user's return requests.
func (c *Client) UserReturnRequests(ctx context.Context, userID int64) ([]models.ReturnRequest, error) {
	var out []models.ReturnRequest
	url := c.url("/returns?user_id=" + strconv.FormatInt(userID, 10))
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}
