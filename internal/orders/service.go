package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/suhome/storefront/internal/api"
	"github.com/suhome/storefront/internal/models"
	"github.com/suhome/storefront/internal/storage"
)

// API is the slice of the backend client the order service needs.
type API interface {
	UserOrders(ctx context.Context, userID int64) ([]api.OrderRow, error)
	AllOrders(ctx context.Context) ([]api.OrderRow, error)
	CancelOrder(ctx context.Context, orderID int64) error
	RefundOrder(ctx context.Context, orderID int64) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}

// Service serves normalized order projections and keeps a local order
// cache for checkouts placed while the backend confirmation is pending.
type Service struct {
	mu    sync.Mutex
	api   API
	store *storage.Store
	log   *logrus.Entry
}

func NewService(client API, store *storage.Store, log *logrus.Entry) *Service {
	return &Service{api: client, store: store, log: log}
}

// UserOrders fetches and normalizes a user's orders.
func (s *Service) UserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := s.api.UserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return MapRows(rows), nil
}

// AllOrders fetches and normalizes every order (staff views).
func (s *Service) AllOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.api.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	return MapRows(rows), nil
}

// Cancel cancels an order on the backend.
func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	return s.api.CancelOrder(ctx, orderID)
}

// Refund requests a refund on the backend.
func (s *Service) Refund(ctx context.Context, orderID int64) error {
	return s.api.RefundOrder(ctx, orderID)
}

// CachedOrders returns the locally cached orders, newest first.
func (s *Service) CachedOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.GetJSON(s.store, storage.KeyOrders, []models.Order{})
}

// OrderByID looks an order up in the local cache by any id form.
func (s *Service) OrderByID(id any) *models.Order {
	target := FormatOrderID(id)
	for _, order := range s.CachedOrders() {
		if order.FormattedID == target {
			o := order
			return &o
		}
	}
	return nil
}

// Contact is the checkout contact block attached to a local order.
type Contact struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// NewOrderInput describes a checkout to record locally.
type NewOrderInput struct {
	ID            int64
	Items         []models.CartItem
	Total         float64
	ShippingFee   float64
	ShippingLabel string
	Contact       *Contact
}

const dateLayout = "02 January 2006"

// AddOrder records a fresh checkout in the local cache with a four-day
// delivery estimate.
func (s *Service) AddOrder(input NewOrderInput) models.Order {
	now := time.Now()

	address := "Saved default address"
	customer := "Customer"
	note := "We will notify you when the shipment is picked up."
	if c := input.Contact; c != nil {
		var lines []string
		if c.Address != "" {
			lines = append(lines, c.Address)
		}
		if line := joinNonEmpty(c.City, c.PostalCode); line != "" {
			lines = append(lines, line)
		}
		if c.Phone != "" {
			lines = append(lines, "Phone: "+c.Phone)
		}
		if len(lines) > 0 {
			address = joinLines(lines)
		}
		if name := joinNonEmpty(c.FirstName, c.LastName); name != "" {
			customer = name
		}
		if c.Notes != "" {
			note = c.Notes
		}
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.OrderItem{
			ID:        item.ID,
			ProductID: item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order := models.Order{
		ID:              input.ID,
		FormattedID:     FormatOrderID(input.ID),
		Date:            now.Format(dateLayout),
		Status:          models.OrderProcessing,
		Total:           input.Total,
		ShippingFee:     input.ShippingFee,
		ShippingLabel:   input.ShippingLabel,
		ShippingCompany: "SUExpress",
		Estimate:        now.Add(4 * 24 * time.Hour).Format(dateLayout),
		Address:         address,
		Note:            note,
		CustomerName:    customer,
		ProgressIndex:   0,
		Items:           items,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	storage.UpdateJSON(s.store, storage.KeyOrders, func(cached []models.Order) []models.Order {
		return append([]models.Order{order}, cached...)
	}, []models.Order{})
	return order
}

// AdvanceOrderStatus moves a cached order one step along the timeline.
// Only the sales manager may do this; the backend is synced best
// effort when the order carries a numeric backend id.
func (s *Service) AdvanceOrderStatus(ctx context.Context, id any, actor *models.User) (*models.Order, error) {
	if actor == nil || actor.Role != models.RoleSalesManager {
		return nil, fmt.Errorf("only the sales manager can update order statuses")
	}

	s.mu.Lock()
	cached := storage.GetJSON(s.store, storage.KeyOrders, []models.Order{})
	target := FormatOrderID(id)
	idx := -1
	for i, order := range cached {
		if order.FormattedID == target {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return nil, fmt.Errorf("order not found")
	}

	order := cached[idx]
	nextStatus, nextIndex := NextStatus(order)
	order.Status = nextStatus
	order.ProgressIndex = nextIndex
	order.StatusUpdatedBy = actor.Name
	order.StatusUpdatedAt = time.Now().Format(time.RFC3339)
	if nextStatus == models.OrderDelivered {
		order.DeliveredAt = time.Now().Format(dateLayout)
	}
	cached[idx] = order
	s.store.SetJSON(storage.KeyOrders, cached)
	s.mu.Unlock()

	if order.ID > 0 {
		if err := s.api.UpdateOrderStatus(ctx, order.ID, StatusToBackend(nextStatus)); err != nil {
			s.log.WithError(err).WithField("order_id", order.ID).Warn("backend status sync failed")
		}
	}
	return &order, nil
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return ""
	}
	result := out[0]
	for _, p := range out[1:] {
		result += " " + p
	}
	return result
}

func joinLines(lines []string) string {
	result := lines[0]
	for _, l := range lines[1:] {
		result += "\n" + l
	}
	return result
}
