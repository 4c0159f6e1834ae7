package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceCarriesCurrencySymbol(t *testing.T) {
	f := NewFormatter("tr", "TRY")

	got := f.Price(1249.5)
	assert.Contains(t, got, "₺")
	assert.NotContains(t, got, "NaN")
}

func TestPriceNonFiniteRendersZero(t *testing.T) {
	f := NewFormatter("tr", "TRY")

	zero := f.Price(0)
	assert.Equal(t, zero, f.Price(math.NaN()))
	assert.Equal(t, zero, f.Price(math.Inf(1)))
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	f := NewFormatter("not-a-locale!!", "XXX-nope")

	assert.NotEmpty(t, f.Price(10))
}

func TestPriceRangeCollapsesEqualBounds(t *testing.T) {
	f := NewFormatter("tr", "TRY")

	assert.Equal(t, f.Price(10), f.PriceRange(10, 10))
	assert.Contains(t, f.PriceRange(10, 20), " – ")
	// Reversed bounds are reordered, not rejected.
	assert.Equal(t, f.PriceRange(10, 20), f.PriceRange(20, 10))
}
