package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/suhome/storefront/internal/models"
)

// Products fetches the full product list. The context cancels the fetch
// on caller teardown; a cancelled result must be discarded, not applied.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.getJSON(ctx, c.url("/products"), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductByID fetches a single product.
func (c *Client) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.getJSON(ctx, c.url("/products/"+url.PathEscape(id)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStock decrements server stock by amount for the given product.
// The server answers {"error": "Not enough stock"} when it cannot.
func (c *Client) UpdateStock(ctx context.Context, id string, amount int) error {
	body := map[string]int{"amount": amount}
	return c.sendJSON(ctx, http.MethodPut, c.url("/products/"+url.PathEscape(id)+"/stock"), body, nil)
}
