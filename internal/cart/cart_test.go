package cart

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhome/storefront/internal/catalog"
	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store, err := storage.NewStore(afero.NewMemMapFs(), "state", logrus.NewEntry(log))
	require.NoError(t, err)
	return store
}

func newTestCart(t *testing.T, user *models.User) (*Cart, *storage.Store) {
	t.Helper()
	store := newTestStore(t)
	return New(store, catalog.NewLedger(store), user), store
}

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price, AvailableStock: 10}
}

func TestAddItemMergesByProductID(t *testing.T) {
	c, _ := newTestCart(t, nil)

	c.AddItem(product("p-1", 100), 1)
	c.AddItem(product("p-1", 100), 2)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemFloorsQuantityAtOne(t *testing.T) {
	c, _ := newTestCart(t, nil)

	c.AddItem(product("p-1", 100), 0)
	c.AddItem(product("p-2", 50), -3)

	for _, item := range c.Items() {
		assert.Equal(t, 1, item.Quantity)
	}
}

func TestDecrementAtOneRemovesLine(t *testing.T) {
	c, _ := newTestCart(t, nil)
	c.AddItem(product("p-1", 100), 1)

	c.Decrement("p-1")

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.ItemCount())
}

func TestIncrementAndDecrement(t *testing.T) {
	c, _ := newTestCart(t, nil)
	c.AddItem(product("p-1", 100), 2)

	c.Increment("p-1")
	assert.Equal(t, 3, c.ItemCount())

	c.Decrement("p-1")
	assert.Equal(t, 2, c.ItemCount())
}

func TestSubtotalSumsPriceTimesQuantity(t *testing.T) {
	c, _ := newTestCart(t, nil)
	c.AddItem(product("p-1", 100), 2)
	c.AddItem(product("p-2", 49.5), 1)

	assert.InDelta(t, 249.5, c.Subtotal(), 1e-9)
}

func TestGuestCartAdoptedOnLogin(t *testing.T) {
	c, store := newTestCart(t, nil)
	c.AddItem(product("p-1", 100), 2)

	// Stale per-user cart must be ignored on first login.
	user := &models.User{ID: 7, Email: "a@b.c"}
	store.SetJSON(storage.UserKey(storage.KeyCart, user), []models.CartItem{
		{ID: "stale", Quantity: 9},
	})

	c.SetUser(user)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p-1", items[0].ID)

	// The guest cart is cleared so logout starts empty.
	guest := storage.GetJSON(store, storage.KeyCart, []models.CartItem{})
	assert.Empty(t, guest)
}

func TestLogoutRestoresGuestCart(t *testing.T) {
	user := &models.User{ID: 7}
	c, _ := newTestCart(t, user)
	c.AddItem(product("p-1", 100), 1)

	c.SetUser(nil)

	assert.Empty(t, c.Items())
}

func TestUserSwitchReloadsThatUsersCart(t *testing.T) {
	userA := &models.User{ID: 1}
	userB := &models.User{ID: 2}

	c, store := newTestCart(t, userA)
	c.AddItem(product("p-1", 100), 1)

	store.SetJSON(storage.UserKey(storage.KeyCart, userB), []models.CartItem{
		{ID: "p-9", Name: "Other", Price: 10, Quantity: 4},
	})

	c.SetUser(userB)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p-9", items[0].ID)
	assert.Equal(t, 4, c.ItemCount())
}

func TestCartPersistsAcrossRestart(t *testing.T) {
	store := newTestStore(t)
	ledger := catalog.NewLedger(store)

	first := New(store, ledger, nil)
	first.AddItem(product("p-1", 100), 2)

	second := New(store, ledger, nil)
	assert.Equal(t, 2, second.ItemCount())
}

func TestCartFeedsInventoryLedger(t *testing.T) {
	store := newTestStore(t)
	ledger := catalog.NewLedger(store)
	c := New(store, ledger, nil)

	c.AddItem(product("p-1", 100), 3)
	assert.Equal(t, map[string]int{"p-1": 3}, ledger.Adjustments())

	c.RemoveItem("p-1")
	assert.Empty(t, ledger.Adjustments())
}
