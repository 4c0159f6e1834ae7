package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// OrderRow is the wire shape of an order as the backend returns it.
// Normalization into the view model lives in the orders package.
type OrderRow struct {
	OrderID         int64          `json:"order_id"`
	UserID          int64          `json:"user_id,omitempty"`
	UserName        string         `json:"user_name,omitempty"`
	UserEmail       string         `json:"user_email,omitempty"`
	OrderDate       string         `json:"order_date,omitempty"`
	Status          string         `json:"status,omitempty"`
	DeliveryStatus  string         `json:"delivery_status,omitempty"`
	DeliveredAt     string         `json:"delivered_at,omitempty"`
	StatusUpdatedAt string         `json:"status_updated_at,omitempty"`
	TotalAmount     float64        `json:"total_amount"`
	ShippingFee     float64        `json:"shipping_fee,omitempty"`
	ShippingLabel   string         `json:"shipping_label,omitempty"`
	ShippingCompany string         `json:"shipping_company,omitempty"`
	ShippingAddress string         `json:"shipping_address,omitempty"`
	Estimate        string         `json:"estimate,omitempty"`
	Note            string         `json:"note,omitempty"`
	Items           []OrderItemRow `json:"items,omitempty"`
}

type OrderItemRow struct {
	OrderItemID   int64   `json:"order_item_id,omitempty"`
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name,omitempty"`
	ProductName   string  `json:"product_name,omitempty"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Image         string  `json:"image,omitempty"`
	Variant       string  `json:"variant,omitempty"`
}

// UserOrders fetches a user's orders. The primary endpoint includes
// items; the history endpoint is a fallback for older backends.
func (c *Client) UserOrders(ctx context.Context, userID int64) ([]OrderRow, error) {
	id := strconv.FormatInt(userID, 10)

	var rows []OrderRow
	err := c.getJSON(ctx, c.url("/orders?user_id="+id), &rows)
	if err == nil && len(rows) > 0 {
		return rows, nil
	}

	var fallback []OrderRow
	if ferr := c.getJSON(ctx, c.url("/orders/history?user_id="+id), &fallback); ferr != nil {
		if err != nil {
			return nil, err
		}
		return nil, ferr
	}
	return fallback, nil
}

// AllOrders fetches every order (staff views).
func (c *Client) AllOrders(ctx context.Context) ([]OrderRow, error) {
	var rows []OrderRow
	if err := c.getJSON(ctx, c.url("/orders"), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// CancelOrder cancels an order by backend id.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/orders/%d/cancel", orderID)
	return c.sendJSON(ctx, http.MethodPut, c.url(path), nil, nil)
}

// RefundOrder requests a refund for an order.
func (c *Client) RefundOrder(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("/orders/%d/refund", orderID)
	return c.sendJSON(ctx, http.MethodPut, c.url(path), nil, nil)
}

// UpdateOrderStatus sets the backend status for an order.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	path := fmt.Sprintf("/orders/%d/status", orderID)
	body := map[string]string{"status": status}
	return c.sendJSON(ctx, http.MethodPut, c.url(path), body, nil)
}

// OrderInvoice downloads the invoice PDF bytes.
func (c *Client) OrderInvoice(ctx context.Context, orderID int64) ([]byte, error) {
	path := fmt.Sprintf("/orders/%d/invoice", orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeResponse(resp, nil)
	}
	return io.ReadAll(resp.Body)
}
