package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kazino55/client/internal/model"
)

// RecentWinners fetches the ticker feed. A non-positive limit uses the
// backend default.
func (c *Client) RecentWinners(ctx context.Context, limit int) ([]model.Winner, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var winners []model.Winner
	if err := c.do(ctx, http.MethodGet, "/winners/recent", query, nil, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// Jackpots lists the current progressive jackpots.
func (c *Client) Jackpots(ctx context.Context) ([]model.Jackpot, error) {
	var jackpots []model.Jackpot
	if err := c.do(ctx, http.MethodGet, "/jackpots", nil, nil, &jackpots); err != nil {
		return nil, err
	}
	return jackpots, nil
}

// PlatformConfig fetches feature flags, supported currencies and wallets.
func (c *Client) PlatformConfig(ctx context.Context) (*model.PlatformConfig, error) {
	var cfg model.PlatformConfig
	if err := c.do(ctx, http.MethodGet, "/config", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Health probes the backend.
func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	var status model.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Bonuses lists the player's claimable bonuses.
func (c *Client) Bonuses(ctx context.Context) ([]model.Bonus, error) {
	var bonuses []model.Bonus
	if err := c.do(ctx, http.MethodGet, "/bonuses", nil, nil, &bonuses); err != nil {
		return nil, err
	}
	return bonuses, nil
}

// ClaimBonus claims a bonus and returns its updated state.
func (c *Client) ClaimBonus(ctx context.Context, bonusID string) (*model.Bonus, error) {
	var bonus model.Bonus
	if err := c.do(ctx, http.MethodPost, "/bonuses/"+bonusID+"/claim", nil, nil, &bonus); err != nil {
		return nil, err
	}
	return &bonus, nil
}

// BonusHistory lists previously claimed bonuses.
func (c *Client) BonusHistory(ctx context.Context) ([]model.Bonus, error) {
	var bonuses []model.Bonus
	if err := c.do(ctx, http.MethodGet, "/bonuses/history", nil, nil, &bonuses); err != nil {
		return nil, err
	}
	return bonuses, nil
}

// CreateSupportTicket opens a support ticket.
func (c *Client) CreateSupportTicket(ctx context.Context, subject, message, category string) (*model.SupportTicket, error) {
	body := map[string]string{"subject": subject, "message": message}
	if category != "" {
		body["category"] = category
	}
	var ticket model.SupportTicket
	if err := c.do(ctx, http.MethodPost, "/support/tickets", nil, body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// SupportTickets lists the player's tickets.
func (c *Client) SupportTickets(ctx context.Context) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	if err := c.do(ctx, http.MethodGet, "/support/tickets", nil, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// AddTicketMessage appends a message to an existing ticket.
func (c *Client) AddTicketMessage(ctx context.Context, ticketID, message string) (*model.SupportTicket, error) {
	body := map[string]string{"message": message}
	var ticket model.SupportTicket
	if err := c.do(ctx, http.MethodPost, "/support/tickets/"+ticketID+"/messages", nil, body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
