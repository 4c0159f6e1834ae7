package catalog

import (
	"sync"

	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

// Ledger is the local inventory-adjustment map: product id -> quantity
// reserved client-side. It compensates for stock the backend has not
// decremented yet (offline checkouts); it is best effort, never
// authoritative.
type Ledger struct {
	mu    sync.Mutex
	store *storage.Store
}

func NewLedger(store *storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Adjustments returns the current adjustment map.
func (l *Ledger) Adjustments() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.GetJSON(l.store, storage.KeyInventory, map[string]int{})
}

// Decrease adds the given quantities to the ledger (stock consumed
// locally).
func (l *Ledger) Decrease(items []models.CartItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	storage.UpdateJSON(l.store, storage.KeyInventory, func(adj map[string]int) map[string]int {
		if adj == nil {
			adj = map[string]int{}
		}
		for _, item := range items {
			if item.ID == "" || item.Quantity <= 0 {
				continue
			}
			adj[item.ID] += item.Quantity
		}
		return adj
	}, map[string]int{})
}

// SetFromCart replaces the ledger with the cart's quantity map, so
// displayed availability tracks what is sitting in the cart.
func (l *Ledger) SetFromCart(items []models.CartItem) {
	adj := map[string]int{}
	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}
		adj[item.ID] = item.Quantity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.SetJSON(storage.KeyInventory, adj)
}

// Compensate lowers a product's adjustment by amount, flooring at zero.
// Used when a stock update could not reach the backend.
func (l *Ledger) Compensate(productID string, amount int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	storage.UpdateJSON(l.store, storage.KeyInventory, func(adj map[string]int) map[string]int {
		if adj == nil {
			adj = map[string]int{}
		}
		next := adj[productID] - amount
		if next < 0 {
			next = 0
		}
		adj[productID] = next
		return adj
	}, map[string]int{})
}
