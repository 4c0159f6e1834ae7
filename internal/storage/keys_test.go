package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suhome/storefront/internal/models"
)

func TestUserKeyPrefersIDOverEmail(t *testing.T) {
	assert.Equal(t, "cart:7", UserKey(KeyCart, &models.User{ID: 7, Email: "a@b.c"}))
	assert.Equal(t, "cart:a@b.c", UserKey(KeyCart, &models.User{Email: "a@b.c"}))
	assert.Equal(t, "cart", UserKey(KeyCart, nil))
}

func TestBuildKeyEmptySuffix(t *testing.T) {
	assert.Equal(t, "wishlist", BuildKey(KeyWishlist, ""))
	assert.Equal(t, "wishlist:guest", BuildKey(KeyWishlist, GuestSuffix))
}
