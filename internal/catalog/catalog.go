package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/suhome/storefront/internal/models"
)

// ProductsAPI is the slice of the backend client the catalog needs.
type ProductsAPI interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateStock(ctx context.Context, id string, amount int) error
}

// Catalog serves product snapshots decorated with client-side computed
// fields. Snapshots are read-only projections; authoritative stock
// lives on the server.
type Catalog struct {
	api    ProductsAPI
	ledger *Ledger
}

func New(api ProductsAPI, ledger *Ledger) *Catalog {
	return &Catalog{api: api, ledger: ledger}
}

// Enrich decorates a raw product with available stock, discount, and
// rating fields.
func Enrich(raw models.Product, adjustments map[string]int) models.Product {
	consumed := adjustments[raw.ID]
	available := raw.Stock - consumed
	if available < 0 {
		available = 0
	}
	raw.AvailableStock = available

	avg := raw.AverageRating
	if avg == 0 {
		avg = raw.Rating
	}
	raw.AverageRating = math.Round(ClampRating(avg, MaxRating)*10) / 10

	raw.HasDiscount = raw.OriginalPrice > 0 && raw.OriginalPrice > raw.Price
	if raw.HasDiscount {
		percent := math.Round((raw.OriginalPrice - raw.Price) / raw.OriginalPrice * 100)
		raw.DiscountLabel = fmt.Sprintf("-%d%%", int(percent))
	} else {
		raw.DiscountLabel = ""
	}
	return raw
}

// ProductsWithMeta fetches all products and enriches them against the
// local inventory ledger.
func (c *Catalog) ProductsWithMeta(ctx context.Context) ([]models.Product, error) {
	raw, err := c.api.Products(ctx)
	if err != nil {
		return nil, err
	}
	adjustments := c.ledger.Adjustments()
	out := make([]models.Product, 0, len(raw))
	for _, p := range raw {
		out = append(out, Enrich(p, adjustments))
	}
	return out, nil
}

// ProductWithMeta fetches and enriches a single product.
func (c *Catalog) ProductWithMeta(ctx context.Context, id string) (*models.Product, error) {
	raw, err := c.api.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	enriched := Enrich(*raw, c.ledger.Adjustments())
	return &enriched, nil
}

// UpdateStock decrements server stock. When the backend cannot be
// reached (or rejects the update), the ledger absorbs the delta so the
// UI stays coherent; the call then reports mocked=true.
func (c *Catalog) UpdateStock(ctx context.Context, id string, amount int) (mocked bool) {
	if err := c.api.UpdateStock(ctx, id, amount); err != nil {
		c.ledger.Compensate(id, amount)
		return true
	}
	return false
}
