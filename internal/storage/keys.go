package storage

import "github.com/suhome/storefront/internal/models"

// Well-known storage keys. Per-user variants are derived with UserKey.
const (
	KeyCart            = "cart"
	KeyWishlist        = "wishlist"
	KeyPendingWishlist = "pending-wishlist"
	KeyOrders          = "orders"
	KeyAuthUser        = "auth-user"
	KeyInventory       = "inventory-adjustments"
	KeyReviews         = "reviews"
	KeyTheme           = "theme"
	KeyChatToken       = "chat-client-token"

	GuestSuffix = "guest"
)

// BuildKey derives a composite key from a base name and a suffix.
func BuildKey(base, suffix string) string {
	if suffix == "" {
		return base
	}
	return base + ":" + suffix
}

// UserKey scopes base to the given user (id, else email). A nil user
// yields the unscoped guest key.
func UserKey(base string, u *models.User) string {
	if u == nil {
		return base
	}
	return BuildKey(base, u.Identity())
}
