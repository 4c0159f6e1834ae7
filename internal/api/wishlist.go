package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/suhome/storefront/internal/models"
)

// WishlistIdentity addresses a server-side wishlist by user id when
// known, else by email.
type WishlistIdentity struct {
	UserID int64
	Email  string
}

func (w WishlistIdentity) query() string {
	params := url.Values{}
	if w.UserID > 0 {
		params.Set("user_id", strconv.FormatInt(w.UserID, 10))
	}
	if w.Email != "" {
		params.Set("email", w.Email)
	}
	return params.Encode()
}

// Wishlist fetches the server-side wishlist for an identity.
func (c *Client) Wishlist(ctx context.Context, ident WishlistIdentity) ([]models.WishlistItem, error) {
	var out []models.WishlistItem
	if err := c.getJSON(ctx, c.url("/wishlist?"+ident.query()), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddWishlistItem adds a product to the server-side wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, ident WishlistIdentity, productID string) error {
	body := map[string]any{
		"email":      ident.Email,
		"product_id": productID,
	}
	if ident.UserID > 0 {
		body["user_id"] = ident.UserID
	}
	return c.sendJSON(ctx, http.MethodPost, c.url("/wishlist"), body, nil)
}

// RemoveWishlistItem removes a product from the server-side wishlist.
func (c *Client) RemoveWishlistItem(ctx context.Context, ident WishlistIdentity, productID string) error {
	u := c.url("/wishlist/" + url.PathEscape(productID) + "?" + ident.query())
	return c.sendJSON(ctx, http.MethodDelete, u, nil, nil)
}
