package cart

import (
	"sync"

	"github.com/suhome/storefront/internal/catalog"
	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

// Cart owns the shopping cart list. All operations are synchronous
// local mutations of in-memory plus persisted state; the server is
// only consulted at checkout. Stock-sufficiency checks are advisory
// and belong to callers.
type Cart struct {
	mu     sync.Mutex
	store  *storage.Store
	ledger *catalog.Ledger
	user   *models.User
	items  []models.CartItem
}

// New loads the cart for the given identity: the per-user cart when a
// session was restored, the guest cart otherwise.
func New(store *storage.Store, ledger *catalog.Ledger, user *models.User) *Cart {
	c := &Cart{store: store, ledger: ledger, user: user}
	c.items = storage.GetJSON(store, storage.UserKey(storage.KeyCart, user), []models.CartItem{})
	return c
}

// SetUser reacts to identity changes. On first login the guest cart is
// adopted wholesale (any stale per-user cart is deliberately ignored)
// and the guest cart is cleared; on logout the guest cart is restored;
// switching between known users re-reads that user's cart.
func (c *Cart) SetUser(user *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case user == nil:
		c.items = storage.GetJSON(c.store, storage.KeyCart, []models.CartItem{})
	case c.user == nil:
		// guest -> user: carry the guest cart over
		c.store.SetJSON(storage.UserKey(storage.KeyCart, user), c.items)
		c.store.SetJSON(storage.KeyCart, []models.CartItem{})
	default:
		c.items = storage.GetJSON(c.store, storage.UserKey(storage.KeyCart, user), []models.CartItem{})
	}
	c.user = user
	c.persistLocked()
}

// AddItem puts qty units of product in the cart, merging with an
// existing line by product id rather than duplicating it.
func (c *Cart) AddItem(product models.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += qty
			c.persistLocked()
			return
		}
	}
	c.items = append(c.items, models.CartItem{
		ID:             product.ID,
		Name:           product.Name,
		Price:          product.Price,
		Image:          product.Image,
		Quantity:       qty,
		AvailableStock: product.AvailableStock,
	})
	c.persistLocked()
}

// Increment raises a line's quantity by one.
func (c *Cart) Increment(id string) {
	c.adjust(id, +1)
}

// Decrement lowers a line's quantity by one. At quantity 1 the line is
// removed; a zero-quantity entry never exists.
func (c *Cart) Decrement(id string) {
	c.adjust(id, -1)
}

// adjust is the single mutation entry point for quantity changes, so
// the remove-at-zero invariant cannot diverge between call sites.
func (c *Cart) adjust(id string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		next := c.items[i].Quantity + delta
		if next <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = next
		}
		c.persistLocked()
		return
	}
}

// RemoveItem drops a line entirely.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persistLocked()
			return
		}
	}
}

// Clear empties the cart (explicit checkout clear).
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []models.CartItem{}
	c.persistLocked()
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Subtotal sums price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum float64
	for _, item := range c.items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// ItemCount sums quantities over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) persistLocked() {
	c.store.SetJSON(storage.UserKey(storage.KeyCart, c.user), c.items)
	c.ledger.SetFromCart(c.items)
}
