package wishlist

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

// API is the slice of the backend client the wishlist needs.
type API interface {
	Wishlist(ctx context.Context, ident api.WishlistIdentity) ([]models.WishlistItem, error)
	AddWishlistItem(ctx context.Context, ident api.WishlistIdentity, productID string) error
	RemoveWishlistItem(ctx context.Context, ident api.WishlistIdentity, productID string) error
}

// Wishlist owns the saved-product list. Guests accumulate a pending
// queue in storage; on login the queue is replayed into the
// authenticated wishlist exactly once, de-duplicated by product id.
type Wishlist struct {
	mu    sync.Mutex
	api   API
	store *storage.Store
	log   *logrus.Entry
	user  *models.User
	items []models.WishlistItem
}

func New(client API, store *storage.Store, log *logrus.Entry, user *models.User) *Wishlist {
	w := &Wishlist{api: client, store: store, log: log, user: user}
	w.items = dedupe(storage.GetJSON(store, w.keyLocked(), []models.WishlistItem{}))
	return w
}

func (w *Wishlist) keyLocked() string {
	if w.user != nil {
		return storage.UserKey(storage.KeyWishlist, w.user)
	}
	return storage.BuildKey(storage.KeyWishlist, storage.GuestSuffix)
}

func guestPendingKey() string {
	return storage.BuildKey(storage.KeyPendingWishlist, storage.GuestSuffix)
}

func (w *Wishlist) identLocked() (api.WishlistIdentity, bool) {
	if w.user == nil {
		return api.WishlistIdentity{}, false
	}
	ident := api.WishlistIdentity{UserID: w.user.ID, Email: w.user.Email}
	return ident, ident.UserID > 0 || ident.Email != ""
}

func dedupe(items []models.WishlistItem) []models.WishlistItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if item.ID == "" || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

func normalize(product models.Product) (models.WishlistItem, bool) {
	if product.ID == "" {
		return models.WishlistItem{}, false
	}
	return models.WishlistItem{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.Image,
	}, true
}

// SetUser reacts to identity changes: reload the scoped list, replace
// it with server truth when the identity can sync, then replay the
// guest pending queue.
func (w *Wishlist) SetUser(ctx context.Context, user *models.User) {
	w.mu.Lock()
	w.user = user
	w.items = dedupe(storage.GetJSON(w.store, w.keyLocked(), []models.WishlistItem{}))

	ident, canSync := w.identLocked()
	if !canSync {
		w.persistLocked()
		w.mu.Unlock()
		return
	}

	if serverItems, err := w.api.Wishlist(ctx, ident); err != nil {
		w.log.WithError(err).Warn("wishlist fetch failed")
	} else {
		w.items = dedupe(serverItems)
	}
	w.persistLocked()
	w.mu.Unlock()

	w.reconcilePending(ctx)
}

// reconcilePending merges queued guest items into the authenticated
// wishlist. The queue is removed from storage before replay, so a
// duplicate login notification finds it empty; replayed items are
// de-duplicated by product id.
func (w *Wishlist) reconcilePending(ctx context.Context) {
	w.mu.Lock()
	ident, canSync := w.identLocked()
	if !canSync {
		w.mu.Unlock()
		return
	}

	pending := storage.GetJSON(w.store, guestPendingKey(), []models.WishlistItem{})
	w.store.Remove(guestPendingKey())
	if len(pending) == 0 {
		w.mu.Unlock()
		return
	}

	existing := make(map[string]bool, len(w.items))
	for _, item := range w.items {
		existing[item.ID] = true
	}
	var toAdd []models.WishlistItem
	for _, item := range pending {
		if item.ID == "" || existing[item.ID] {
			continue
		}
		existing[item.ID] = true
		toAdd = append(toAdd, item)
	}
	w.items = append(w.items, toAdd...)
	w.persistLocked()
	w.mu.Unlock()

	for _, item := range toAdd {
		if err := w.api.AddWishlistItem(ctx, ident, item.ID); err != nil {
			w.log.WithError(err).WithField("product_id", item.ID).Warn("pending wishlist sync failed")
			w.dropLocal(item.ID)
		}
	}
}

// QueuePending stages a guest's wishlist pick for replay after login.
func (w *Wishlist) QueuePending(product models.Product) {
	item, ok := normalize(product)
	if !ok {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	storage.UpdateJSON(w.store, guestPendingKey(), func(pending []models.WishlistItem) []models.WishlistItem {
		for _, existing := range pending {
			if existing.ID == item.ID {
				return pending
			}
		}
		return append(pending, item)
	}, []models.WishlistItem{})
}

// Toggle adds the product when absent and removes it when present,
// mirroring the change to the server and rolling back on failure.
func (w *Wishlist) Toggle(ctx context.Context, product models.Product) error {
	item, ok := normalize(product)
	if !ok {
		return nil
	}
	if w.InWishlist(item.ID) {
		return w.Remove(ctx, item.ID)
	}
	return w.Add(ctx, product)
}

// Add appends the product, de-duplicated by id.
func (w *Wishlist) Add(ctx context.Context, product models.Product) error {
	item, ok := normalize(product)
	if !ok {
		return nil
	}

	w.mu.Lock()
	for _, existing := range w.items {
		if existing.ID == item.ID {
			w.mu.Unlock()
			return nil
		}
	}
	w.items = append(w.items, item)
	w.persistLocked()
	ident, canSync := w.identLocked()
	w.mu.Unlock()

	if !canSync {
		return nil
	}
	if err := w.api.AddWishlistItem(ctx, ident, item.ID); err != nil {
		w.dropLocal(item.ID)
		return err
	}
	return nil
}

// Remove drops the product locally and from the server-side wishlist.
func (w *Wishlist) Remove(ctx context.Context, id string) error {
	w.mu.Lock()
	var removed *models.WishlistItem
	for i, item := range w.items {
		if item.ID == id {
			removed = &item
			w.items = append(w.items[:i], w.items[i+1:]...)
			break
		}
	}
	w.persistLocked()
	ident, canSync := w.identLocked()
	w.mu.Unlock()

	if removed == nil || !canSync {
		return nil
	}
	if err := w.api.RemoveWishlistItem(ctx, ident, id); err != nil {
		w.mu.Lock()
		w.items = append(w.items, *removed)
		w.persistLocked()
		w.mu.Unlock()
		return err
	}
	return nil
}

// InWishlist reports whether the product id is saved.
func (w *Wishlist) InWishlist(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range w.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the saved products.
func (w *Wishlist) Items() []models.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := make([]models.WishlistItem, len(w.items))
	copy(items, w.items)
	return items
}

func (w *Wishlist) dropLocal(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, item := range w.items {
		if item.ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			break
		}
	}
	w.persistLocked()
}

func (w *Wishlist) persistLocked() {
	if w.items == nil {
		w.items = []models.WishlistItem{}
	}
	w.store.SetJSON(w.keyLocked(), w.items)
}
