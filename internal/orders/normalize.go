package orders

import (
	"encoding/json"
	"strings"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
)

// normalizeAddress reduces the backend's address payload (a JSON object
// serialized into a string on some backend versions) to the display
// line: address, city, postal code.
func normalizeAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Not provided"
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return raw
	}

	pick := func(keys ...string) string {
		for _, key := range keys {
			if v, ok := obj[key].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}

	main := pick("address", "street", "line1", "line", "addressLine", "address_line")
	city := pick("city", "town", "state")
	postal := pick("postalCode", "postcode", "zip", "zipCode")

	var parts []string
	for _, p := range []string{main, city, postal} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Not provided"
	}
	return strings.Join(parts, ", ")
}

// mapRow turns a wire order row into the view model.
func mapRow(row api.OrderRow) models.Order {
	status := StatusFromBackend(row.Status)
	delivery := status
	if row.DeliveryStatus != "" {
		delivery = StatusFromBackend(row.DeliveryStatus)
	}

	items := make([]models.OrderItem, 0, len(row.Items))
	for _, it := range row.Items {
		name := it.Name
		if name == "" {
			name = it.ProductName
		}
		if name == "" {
			name = "Item"
		}
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		original := it.OriginalPrice
		if original == 0 {
			original = it.Price
		}
		items = append(items, models.OrderItem{
			ID:            it.ProductID,
			OrderItemID:   it.OrderItemID,
			ProductID:     it.ProductID,
			Name:          name,
			Variant:       it.Variant,
			Quantity:      qty,
			Price:         it.Price,
			OriginalPrice: original,
			Image:         it.Image,
		})
	}

	company := row.ShippingCompany
	if company == "" {
		company = "SUExpress"
	}

	return models.Order{
		ID:              row.OrderID,
		FormattedID:     FormatOrderID(row.OrderID),
		UserID:          row.UserID,
		CustomerName:    row.UserName,
		CustomerEmail:   row.UserEmail,
		Date:            row.OrderDate,
		Status:          status,
		DeliveryStatus:  delivery,
		DeliveredAt:     row.DeliveredAt,
		StatusUpdatedAt: row.StatusUpdatedAt,
		Total:           row.TotalAmount,
		ShippingFee:     row.ShippingFee,
		ShippingLabel:   row.ShippingLabel,
		ShippingCompany: company,
		Estimate:        row.Estimate,
		Address:         normalizeAddress(row.ShippingAddress),
		Note:            row.Note,
		ProgressIndex:   TimelineIndex(status),
		Items:           items,
	}
}

// MapRows normalizes a backend order listing.
func MapRows(rows []api.OrderRow) []models.Order {
	out := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapRow(row))
	}
	return out
}
