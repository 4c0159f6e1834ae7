package format

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders prices for the storefront locale.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a price formatter for the given BCP 47 locale and
// ISO 4217 currency code. Unknown values fall back to tr / TRY.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Turkish
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.TRY
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}
}

// Price renders an amount with the currency symbol. Non-finite amounts
// render as zero rather than leaking NaN into the UI.
func (f *Formatter) Price(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(amount)))
}

// PriceRange renders "low – high", collapsing to a single price when the
// bounds match.
func (f *Formatter) PriceRange(low, high float64) string {
	if low == high {
		return f.Price(low)
	}
	if low > high {
		low, high = high, low
	}
	return f.Price(low) + " – " + f.Price(high)
}

// Quantity renders an integer count with locale grouping.
func (f *Formatter) Quantity(n int) string {
	return f.printer.Sprintf("%v", number.Decimal(n))
}

// Percent renders a discount fraction (0.15 → "15%").
func (f *Formatter) Percent(fraction float64) string {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		fraction = 0
	}
	return f.printer.Sprintf("%v", number.Percent(fraction))
}
