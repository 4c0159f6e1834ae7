package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suhome/storefront/internal/models"
)

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.products)
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

func (s *Server) updateStock(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Amount int `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if s.products[i].Stock < body.Amount {
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock"})
			return
		}
		s.products[i].Stock -= body.Amount
		c.JSON(http.StatusOK, gin.H{"stock": s.products[i].Stock})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

func (s *Server) productComments(c *gin.Context) {
	productID := c.Param("productId")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Comment{}
	for _, cm := range s.comments {
		if cm.ProductID == productID && cm.Approved {
			out = append(out, cm)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addComment(c *gin.Context) {
	var body struct {
		UserID    int64   `json:"user_id"`
		ProductID string  `json:"productId"`
		Rating    float64 `json:"rating"`
		Text      string  `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCommentID++
	comment := models.Comment{
		ID:        s.nextCommentID,
		UserID:    body.UserID,
		ProductID: body.ProductID,
		Rating:    body.Rating,
		Text:      body.Text,
		Approved:  false,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.comments = append(s.comments, comment)
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) userComments(c *gin.Context) {
	userID, _ := strconv.ParseInt(c.Query("userId"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Comment{}
	for _, cm := range s.comments {
		if cm.UserID == userID {
			out = append(out, cm)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) pendingComments(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Comment{}
	for _, cm := range s.comments {
		if !cm.Approved {
			out = append(out, cm)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) approveComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments[i].Approved = true
			c.JSON(http.StatusOK, gin.H{"message": "Comment approved"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
}

func (s *Server) rejectComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Comment rejected"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
}

// canReview allows a review only after a delivered order contains the
// product.
func (s *Server) canReview(c *gin.Context) {
	productID := c.Param("productId")
	userID, _ := strconv.ParseInt(c.Query("userId"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.UserID != userID || order.Status != "delivered" {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				c.JSON(http.StatusOK, gin.H{"canReview": true})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"canReview": false})
}
