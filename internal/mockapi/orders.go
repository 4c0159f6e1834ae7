package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suhome/storefront/internal/models"
)

func (s *Server) listOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []orderRecord{}
	if raw := c.Query("user_id"); raw != "" {
		userID, _ := strconv.ParseInt(raw, 10, 64)
		for _, order := range s.orders {
			if order.UserID == userID {
				out = append(out, order)
			}
		}
	} else {
		out = append(out, s.orders...)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) findOrderLocked(raw string) *orderRecord {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	for i := range s.orders {
		if s.orders[i].OrderID == id {
			return &s.orders[i]
		}
	}
	return nil
}

func (s *Server) cancelOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.findOrderLocked(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != "preparing" {
		c.JSON(http.StatusConflict, gin.H{"error": "Only preparing orders can be cancelled"})
		return
	}
	order.Status = "cancelled"
	order.StatusUpdatedAt = time.Now().Format(time.RFC3339)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

func (s *Server) refundOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.findOrderLocked(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != "delivered" {
		c.JSON(http.StatusConflict, gin.H{"error": "Only delivered orders can be refunded"})
		return
	}
	order.Status = "refund_waiting"
	order.StatusUpdatedAt = time.Now().Format(time.RFC3339)
	c.JSON(http.StatusOK, gin.H{"message": "Refund requested"})
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.findOrderLocked(c.Param("id"))
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	order.Status = body.Status
	order.StatusUpdatedAt = time.Now().Format(time.RFC3339)
	if body.Status == "delivered" {
		order.DeliveredAt = time.Now().Format("2006-01-02")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (s *Server) orderInvoice(c *gin.Context) {
	s.mu.Lock()
	order := s.findOrderLocked(c.Param("id"))
	s.mu.Unlock()
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	// A minimal valid PDF is enough for the download path.
	pdf := fmt.Sprintf("%%PDF-1.4\n%% invoice for order %d\n%%%%EOF\n", order.OrderID)
	c.Data(http.StatusOK, "application/pdf", []byte(pdf))
}

// wishlistKeyLocked resolves a wishlist bucket from user_id or email.
func (s *Server) wishlistKey(userID, email string) string {
	if userID != "" {
		return "user:" + userID
	}
	if email != "" {
		return "email:" + email
	}
	return ""
}

func (s *Server) getWishlist(c *gin.Context) {
	key := s.wishlistKey(c.Query("user_id"), c.Query("email"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or email is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.wishlists[key]
	if items == nil {
		items = []models.WishlistItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) addWishlistItem(c *gin.Context) {
	var body struct {
		UserID    int64  `json:"user_id"`
		Email     string `json:"email"`
		ProductID string `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}
	userID := ""
	if body.UserID > 0 {
		userID = strconv.FormatInt(body.UserID, 10)
	}
	key := s.wishlistKey(userID, body.Email)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or email is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.wishlists[key] {
		if item.ID == body.ProductID {
			c.JSON(http.StatusOK, gin.H{"message": "Already in wishlist"})
			return
		}
	}

	entry := models.WishlistItem{ID: body.ProductID, AddedAt: time.Now().Format(time.RFC3339)}
	for _, p := range s.products {
		if p.ID == body.ProductID {
			entry.Name = p.Name
			entry.Price = p.Price
			entry.Image = p.Image
		}
	}
	s.wishlists[key] = append(s.wishlists[key], entry)
	c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist"})
}

func (s *Server) removeWishlistItem(c *gin.Context) {
	key := s.wishlistKey(c.Query("user_id"), c.Query("email"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or email is required"})
		return
	}
	productID := c.Param("productId")

	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.wishlists[key]
	for i, item := range items {
		if item.ID == productID {
			s.wishlists[key] = append(items[:i], items[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Item not in wishlist"})
}

func (s *Server) requestReturn(c *gin.Context) {
	var body struct {
		UserID      int64  `json:"user_id"`
		OrderItemID int64  `json:"order_item_id"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.OrderItemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_item_id is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.returns {
		if r.UserID == body.UserID && r.OrderItemID == body.OrderItemID {
			c.JSON(http.StatusConflict, gin.H{"error": "Return already requested for this item"})
			return
		}
	}
	s.nextReturnID++
	req := models.ReturnRequest{
		ID:          s.nextReturnID,
		UserID:      body.UserID,
		OrderItemID: body.OrderItemID,
		Reason:      body.Reason,
		Status:      "pending",
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	s.returns = append(s.returns, req)
	c.JSON(http.StatusCreated, req)
}

func (s *Server) listReturns(c *gin.Context) {
	userID, _ := strconv.ParseInt(c.Query("user_id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.ReturnRequest{}
	for _, r := range s.returns {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}
