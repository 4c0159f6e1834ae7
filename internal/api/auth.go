package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/suhome/storefront/internal/models"
)

var validate = validator.New()

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	TaxID    string `json:"taxId" validate:"omitempty"`
}

type AuthResponse struct {
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Login authenticates against the backend. Invalid input is rejected
// locally and never reaches the network.
func (c *Client) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid login input: %w", err)
	}
	var out AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, c.url("/auth/login"), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new customer account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid registration input: %w", err)
	}
	var out AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, c.url("/auth/register"), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestPasswordReset asks the backend to mail a reset token.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.sendJSON(ctx, http.MethodPost, c.url("/auth/forgot"), body, nil)
}

// SubmitPasswordReset exchanges a reset token for a new password.
func (c *Client) SubmitPasswordReset(ctx context.Context, token, password string) error {
	if password == "" {
		return fmt.Errorf("invalid reset input: password must not be empty")
	}
	body := map[string]string{"token": token, "password": password}
	return c.sendJSON(ctx, http.MethodPost, c.url("/auth/reset"), body, nil)
}
