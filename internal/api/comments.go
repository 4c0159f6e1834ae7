package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/suhome/storefront/internal/models"
)

// ProductComments lists approved comments for a product.
func (c *Client) ProductComments(ctx context.Context, productID string) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.getJSON(ctx, c.url("/comments/"+url.PathEscape(productID)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment submits a product comment for moderation.
func (c *Client) AddComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	body := map[string]any{
		"user_id":   comment.UserID,
		"productId": comment.ProductID,
		"rating":    comment.Rating,
		"text":      comment.Text,
	}
	var out models.Comment
	if err := c.sendJSON(ctx, http.MethodPost, c.url("/comments"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserComments lists a user's own comments.
func (c *Client) UserComments(ctx context.Context, userID int64) ([]models.Comment, error) {
	var out []models.Comment
	u := c.url("/comments/user?userId=" + strconv.FormatInt(userID, 10))
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingComments lists comments awaiting moderation.
func (c *Client) PendingComments(ctx context.Context) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.getJSON(ctx, c.url("/comments/pending"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveComment approves a pending comment.
func (c *Client) ApproveComment(ctx context.Context, commentID int64) error {
	path := fmt.Sprintf("/comments/%d/approve", commentID)
	return c.sendJSON(ctx, http.MethodPost, c.url(path), nil, nil)
}

// RejectComment rejects a pending comment.
func (c *Client) RejectComment(ctx context.Context, commentID int64) error {
	path := fmt.Sprintf("/comments/%d/reject", commentID)
	return c.sendJSON(ctx, http.MethodPost, c.url(path), nil, nil)
}

// CanReview reports whether the user took delivery of the product and
// may therefore review it.
func (c *Client) CanReview(ctx context.Context, userID int64, productID string) (bool, error) {
	var out struct {
		CanReview bool `json:"canReview"`
	}
	u := c.url("/comments/can/" + url.PathEscape(productID) + "?userId=" + strconv.FormatInt(userID, 10))
	if err := c.getJSON(ctx, u, &out); err != nil {
		return false, err
	}
	return out.CanReview, nil
}
