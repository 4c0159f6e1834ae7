package orders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suhome/storefront/internal/models"
)

// timelineSteps is the customer-facing delivery timeline.
var timelineSteps = []string{
	models.OrderProcessing,
	models.OrderInTransit,
	models.OrderDelivered,
}

// FormatOrderID renders any order id representation as the display
// form: numeric ids become "#ORD-00042", already formatted strings pass
// through, missing ids render as "#ORD-00000".
func FormatOrderID(id any) string {
	switch v := id.(type) {
	case nil:
		return "#ORD-00000"
	case int:
		return fmt.Sprintf("#ORD-%05d", v)
	case int64:
		return fmt.Sprintf("#ORD-%05d", v)
	case float64:
		return fmt.Sprintf("#ORD-%05d", int64(v))
	case string:
		if v == "" {
			return "#ORD-00000"
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return fmt.Sprintf("#ORD-%05d", n)
		}
		if strings.HasPrefix(v, "#ORD-") {
			return v
		}
		return "#ORD-" + v
	default:
		return "#ORD-00000"
	}
}

// TimelineIndex places a status on the delivery timeline; unknown
// statuses sit at the start.
func TimelineIndex(status string) int {
	for i, step := range timelineSteps {
		if step == status {
			return i
		}
	}
	return 0
}

// StatusFromBackend maps the backend's snake_case order status onto the
// display vocabulary.
func StatusFromBackend(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.Contains(normalized, "refund_waiting"),
		strings.Contains(normalized, "refund waiting"),
		strings.Contains(normalized, "refund pending"):
		return models.OrderRefundWaiting
	case strings.Contains(normalized, "refund_rejected"),
		strings.Contains(normalized, "refund rejected"),
		strings.Contains(normalized, "not refunded"):
		return models.OrderRefundRejected
	case normalized == "refunded":
		return models.OrderRefunded
	case normalized == "cancelled":
		return models.OrderCancelled
	case strings.Contains(normalized, "transit"), normalized == "shipped":
		return models.OrderInTransit
	case normalized == "delivered":
		return models.OrderDelivered
	default:
		return models.OrderProcessing
	}
}

var statusToBackend = map[string]string{
	models.OrderProcessing:     "preparing",
	models.OrderInTransit:      "in_transit",
	models.OrderDelivered:      "delivered",
	models.OrderCancelled:      "cancelled",
	models.OrderRefundWaiting:  "refund_waiting",
	models.OrderRefunded:       "refunded",
	models.OrderRefundRejected: "refund_rejected",
}

// StatusToBackend maps a display status to the backend vocabulary.
func StatusToBackend(status string) string {
	if backend, ok := statusToBackend[status]; ok {
		return backend
	}
	return "preparing"
}

// NextStatus computes the following status on the timeline. Refund
// Waiting resolves to Refunded; terminal statuses stay put.
func NextStatus(order models.Order) (string, int) {
	current := order.Status
	if current == models.OrderRefundWaiting {
		return models.OrderRefunded, len(timelineSteps) - 1
	}
	switch current {
	case models.OrderCancelled, models.OrderRefunded, models.OrderRefundRejected, models.OrderDelivered:
		return current, len(timelineSteps) - 1
	}
	idx := TimelineIndex(current)
	next := idx + 1
	if next > len(timelineSteps)-1 {
		next = len(timelineSteps) - 1
	}
	return timelineSteps[next], next
}
