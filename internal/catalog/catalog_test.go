package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

type fakeProductsAPI struct {
	products []models.Product
	stockErr error
	updates  map[string]int
}

func (f *fakeProductsAPI) Products(context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeProductsAPI) ProductByID(_ context.Context, id string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeProductsAPI) UpdateStock(_ context.Context, id string, amount int) error {
	if f.stockErr != nil {
		return f.stockErr
	}
	if f.updates == nil {
		f.updates = make(map[string]int)
	}
	f.updates[id] += amount
	return nil
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store, err := storage.NewStore(afero.NewMemMapFs(), "state", logrus.NewEntry(log))
	require.NoError(t, err)
	return NewLedger(store)
}

func TestEnrichAvailableStockFloorsAtZero(t *testing.T) {
	raw := models.Product{ID: "p-1", Stock: 5}

	enriched := Enrich(raw, map[string]int{"p-1": 3})
	assert.Equal(t, 2, enriched.AvailableStock)

	enriched = Enrich(raw, map[string]int{"p-1": 9})
	assert.Equal(t, 0, enriched.AvailableStock)
}

func TestEnrichDiscountLabel(t *testing.T) {
	enriched := Enrich(models.Product{ID: "p-1", Price: 75, OriginalPrice: 100}, nil)
	assert.True(t, enriched.HasDiscount)
	assert.Equal(t, "-25%", enriched.DiscountLabel)

	enriched = Enrich(models.Product{ID: "p-1", Price: 100}, nil)
	assert.False(t, enriched.HasDiscount)
	assert.Empty(t, enriched.DiscountLabel)

	// Original price at or below the sale price is not a discount.
	enriched = Enrich(models.Product{ID: "p-1", Price: 100, OriginalPrice: 100}, nil)
	assert.False(t, enriched.HasDiscount)
}

func TestEnrichRatingFallsBackAndRounds(t *testing.T) {
	enriched := Enrich(models.Product{ID: "p-1", Rating: 4.449}, nil)
	assert.InDelta(t, 4.4, enriched.AverageRating, 1e-9)

	enriched = Enrich(models.Product{ID: "p-1", Rating: 7.2}, nil)
	assert.InDelta(t, 5, enriched.AverageRating, 1e-9)
}

func TestProductsWithMetaAppliesLedger(t *testing.T) {
	client := &fakeProductsAPI{products: []models.Product{{ID: "p-1", Stock: 4}}}
	ledger := newTestLedger(t)
	ledger.SetFromCart([]models.CartItem{{ID: "p-1", Quantity: 1}})
	c := New(client, ledger)

	products, err := c.ProductsWithMeta(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].AvailableStock)
}

func TestUpdateStockFallsBackToLedger(t *testing.T) {
	client := &fakeProductsAPI{stockErr: errors.New("offline")}
	ledger := newTestLedger(t)
	ledger.SetFromCart([]models.CartItem{{ID: "p-1", Quantity: 2}})
	c := New(client, ledger)

	mocked := c.UpdateStock(context.Background(), "p-1", 2)

	assert.True(t, mocked)
	assert.Equal(t, 0, ledger.Adjustments()["p-1"])
}

func TestUpdateStockBackendSuccess(t *testing.T) {
	client := &fakeProductsAPI{}
	c := New(client, newTestLedger(t))

	mocked := c.UpdateStock(context.Background(), "p-1", 2)

	assert.False(t, mocked)
	assert.Equal(t, 2, client.updates["p-1"])
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil, 1))
	assert.InDelta(t, 4.3, AverageRating([]float64{4, 4.5}, 1), 1e-9)
	// Out-of-range values clamp before averaging.
	assert.InDelta(t, 2.5, AverageRating([]float64{-5, 10}, 1), 1e-9)
}

func TestRatingDistribution(t *testing.T) {
	dist := RatingDistribution([]float64{1, 4.6, 5, 3.2}, MaxRating)
	assert.Equal(t, 1, dist[1])
	assert.Equal(t, 1, dist[3])
	assert.Equal(t, 2, dist[5])
	assert.Equal(t, 0, dist[2])
}

func TestSummarizeRatings(t *testing.T) {
	summary := SummarizeRatings([]float64{5, 4})
	assert.Equal(t, 2, summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 1e-9)
}
