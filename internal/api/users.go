package api

import (
	"context"
	"net/http"

	"github.com/kazino55/client/internal/model"
)

// ProfileUpdate carries the editable profile fields. Zero-valued fields are
// omitted from the request.
type ProfileUpdate struct {
	Email    string `json:"email,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// Profile fetches the authenticated player's profile.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the new profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{"currentPassword": current, "newPassword": updated}
	return c.do(ctx, http.MethodPut, "/users/password", nil, body, nil)
}

// Balance fetches the wallet balance(s).
func (c *Client) Balance(ctx context.Context) (*model.Balance, error) {
	var balance model.Balance
	if err := c.do(ctx, http.MethodGet, "/users/balance", nil, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// Statistics fetches the player's aggregate play statistics.
func (c *Client) Statistics(ctx context.Context) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	if err := c.do(ctx, http.MethodGet, "/users/statistics", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
