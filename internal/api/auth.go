package api

import (
	"context"
	"net/http"

	"github.com/kazino55/client/internal/model"
)

// RegisterRequest is the full registration form payload.
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Nickname       string `json:"nickname"`
	AgreeTerms     bool   `json:"agreeTerms"`
	AgreeMarketing bool   `json:"agreeMarketing,omitempty"`
}

// Register creates a full account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.AuthResult, error) {
	var result model.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// QuickRegister creates a one-click account with generated credentials.
func (c *Client) QuickRegister(ctx context.Context, agreeTerms bool) (*model.AuthResult, error) {
	var result model.AuthResult
	body := map[string]bool{"agreeTerms": agreeTerms}
	if err := c.do(ctx, http.MethodPost, "/auth/register/quick", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	var result model.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the backend session. Local teardown is the auth
// lifecycle's responsibility, not this call's.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Refresh rotates the token pair using the given refresh token. The rotated
// pair is returned, not stored; storage is the caller's concern.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	var result model.AuthResult
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
