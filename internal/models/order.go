package models

// Frontend-facing order statuses. The backend speaks snake_case variants,
// mapping lives in the orders package.
const (
	OrderProcessing     = "Processing"
	OrderInTransit      = "In-transit"
	OrderDelivered      = "Delivered"
	OrderCancelled      = "Cancelled"
	OrderRefundWaiting  = "Refund Waiting"
	OrderRefunded       = "Refunded"
	OrderRefundRejected = "Refund Rejected"
)

type Order struct {
	ID              int64       `json:"id"`
	FormattedID     string      `json:"formattedId"`
	UserID          int64       `json:"userId,omitempty"`
	CustomerName    string      `json:"customerName,omitempty"`
	CustomerEmail   string      `json:"customerEmail,omitempty"`
	Date            string      `json:"date"`
	Status          string      `json:"status"`
	DeliveryStatus  string      `json:"deliveryStatus,omitempty"`
	DeliveredAt     string      `json:"deliveredAt,omitempty"`
	StatusUpdatedAt string      `json:"statusUpdatedAt,omitempty"`
	StatusUpdatedBy string      `json:"statusUpdatedBy,omitempty"`
	Total           float64     `json:"total"`
	ShippingFee     float64     `json:"shippingFee,omitempty"`
	ShippingLabel   string      `json:"shippingLabel,omitempty"`
	ShippingCompany string      `json:"shippingCompany,omitempty"`
	Estimate        string      `json:"estimate,omitempty"`
	Address         string      `json:"address,omitempty"`
	Note            string      `json:"note,omitempty"`
	ProgressIndex   int         `json:"progressIndex"`
	Items           []OrderItem `json:"items"`
}

type OrderItem struct {
	ID            string  `json:"id"`
	OrderItemID   int64   `json:"orderItemId,omitempty"`
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Variant       string  `json:"variant,omitempty"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image,omitempty"`
}

type ReturnRequest struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	OrderItemID int64  `json:"order_item_id"`
	Reason      string `json:"reason,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
