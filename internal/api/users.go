package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/suhome/storefront/internal/models"
)

// UserProfile fetches a user's profile.
func (c *Client) UserProfile(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var out models.User
	if err := c.getJSON(ctx, c.url(fmt.Sprintf("/users/%d", userID)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserAddress patches the user's address.
func (c *Client) UpdateUserAddress(ctx context.Context, userID int64, address string) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}
	body := map[string]string{"address": address}
	return c.sendJSON(ctx, http.MethodPatch, c.url(fmt.Sprintf("/users/%d/address", userID)), body, nil)
}

// UpdateUserProfile patches name, address, and tax id.
func (c *Client) UpdateUserProfile(ctx context.Context, userID int64, name, address, taxID string) error {
	if userID <= 0 {
		return fmt.Errorf("invalid user id")
	}
	body := map[string]string{"name": name, "address": address, "taxId": taxID}
	return c.sendJSON(ctx, http.MethodPatch, c.url(fmt.Sprintf("/users/%d/profile", userID)), body, nil)
}
