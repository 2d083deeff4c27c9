package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kazino55/client/internal/model"
)

// DepositRequest creates a deposit transaction. Card fields are required for
// card methods only.
type DepositRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	CardNumber    string  `json:"cardNumber,omitempty"`
	ExpiryDate    string  `json:"expiryDate,omitempty"`
	CVV           string  `json:"cvv,omitempty"`
	SaveCard      bool    `json:"saveCard,omitempty"`
	Wallet        string  `json:"wallet,omitempty"`
}

// WithdrawalRequest creates a withdrawal transaction.
type WithdrawalRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	CardNumber    string  `json:"cardNumber,omitempty"`
	AccountHolder string  `json:"accountHolder,omitempty"`
	Wallet        string  `json:"wallet,omitempty"`
}

// HistoryParams filter the payment history listing. Zero values mean
// "no filter" / backend defaults.
type HistoryParams struct {
	Page   int
	Limit  int
	Type   string // "deposit" or "withdrawal"
	Status string // "pending", "completed" or "failed"
}

// HistoryPage is one page of the transaction history.
type HistoryPage struct {
	Data       []model.PaymentTransaction `json:"data"`
	Pagination model.Pagination           `json:"pagination"`
}

// CreateDeposit submits a deposit.
func (c *Client) CreateDeposit(ctx context.Context, req DepositRequest) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction
	if err := c.do(ctx, http.MethodPost, "/payments/deposit", nil, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CreateWithdrawal submits a withdrawal.
func (c *Client) CreateWithdrawal(ctx context.Context, req WithdrawalRequest) (*model.PaymentTransaction, error) {
	var tx model.PaymentTransaction
	if err := c.do(ctx, http.MethodPost, "/payments/withdraw", nil, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// PaymentHistory lists past transactions, newest first.
func (c *Client) PaymentHistory(ctx context.Context, params HistoryParams) (*HistoryPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Type != "" {
		query.Set("type", params.Type)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}

	var page HistoryPage
	if err := c.do(ctx, http.MethodGet, "/payments/history", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SavedCards lists the cards stored with the backend.
func (c *Client) SavedCards(ctx context.Context) ([]model.SavedCard, error) {
	var cards []model.SavedCard
	if err := c.do(ctx, http.MethodGet, "/payments/cards", nil, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// DeleteSavedCard removes a stored card.
func (c *Client) DeleteSavedCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/payments/cards/"+cardID, nil, nil, nil)
}
