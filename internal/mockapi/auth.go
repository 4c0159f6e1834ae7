package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suhome/storefront/internal/models"
)

func (s *Server) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.users {
		if strings.EqualFold(acct.Email, body.Email) && acct.Password == body.Password {
			user := acct.User
			user.ExpiresAt = time.Now().Add(time.Hour).UnixMilli()
			c.JSON(http.StatusOK, gin.H{"user": user})
			return
		}
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
}

func (s *Server) register(c *gin.Context) {
	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
		TaxID    string `json:"taxId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.users {
		if strings.EqualFold(acct.Email, body.Email) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
	}

	s.nextUserID++
	user := models.User{
		ID:        s.nextUserID,
		Email:     body.Email,
		Name:      body.FullName,
		TaxID:     body.TaxID,
		Role:      models.RoleCustomer,
		ExpiresAt: time.Now().Add(time.Hour).UnixMilli(),
	}
	s.users = append(s.users, account{User: user, Password: body.Password})
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	// Always accept so the endpoint never leaks which emails exist.
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link has been sent"})
}

func (s *Server) resetPassword(c *gin.Context) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and password are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (s *Server) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range s.users {
		if acct.ID == id {
			c.JSON(http.StatusOK, acct.User)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
}

func (s *Server) updateUserAddress(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var body struct {
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Address = body.Address
			c.JSON(http.StatusOK, gin.H{"message": "Address updated"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
}

func (s *Server) updateUserProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var body struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		TaxID   string `json:"taxId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			if body.Name != "" {
				s.users[i].Name = body.Name
			}
			s.users[i].Address = body.Address
			s.users[i].TaxID = body.TaxID
			c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
}
