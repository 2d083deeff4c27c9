package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kazino55/client/internal/model"
)

type updateProfileRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type depositRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	CardNumber    string  `json:"cardNumber"`
	ExpiryDate    string  `json:"expiryDate"`
	CVV           string  `json:"cvv"`
	SaveCard      bool    `json:"saveCard"`
	Wallet        string  `json:"wallet"`
}

type withdrawalRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	CardNumber    string  `json:"cardNumber"`
	AccountHolder string  `json:"accountHolder"`
	Wallet        string  `json:"wallet"`
}

// handleProfile handles GET /users/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	user, err := s.store.User(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, user, "")
}

// handleUpdateProfile handles PUT /users/profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	user, err := s.store.UpdateUser(userID, req.Email, req.Nickname)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "email already used",
				map[string]string{"email": "email already used"})
			return
		}
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, user, "profile updated")
}

// handleChangePassword handles PUT /users/password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters",
			map[string]string{"newPassword": "password must be at least 6 characters"})
		return
	}

	if err := s.store.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, "current password is incorrect", nil)
		return
	}
	writeData(w, http.StatusOK, nil, "password changed")
}

// handleBalance handles GET /users/balance. The payload mirrors the
// production backend's loose shape: both totalBalance and per-wallet rows.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	user, err := s.store.User(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}

	now := time.Now()
	total := user.Balance
	balance := model.Balance{
		Wallets: []model.WalletBalance{{
			Wallet:      "chcblack",
			Balance:     user.Balance,
			Currency:    "AZN",
			LastUpdated: now,
		}},
		TotalBalance: &total,
		Currency:     "AZN",
		LastUpdated:  now,
	}
	writeData(w, http.StatusOK, balance, "")
}

// handleStatistics handles GET /users/statistics.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	user, err := s.store.User(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, model.UserStatistics{
		TotalDeposits:    user.TotalDeposits,
		TotalWithdrawals: user.TotalWithdrawals,
		TotalWinnings:    user.TotalWinnings,
		GamesPlayed:      user.GamesPlayed,
	}, "")
}

// handleDeposit handles POST /payments/deposit.
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be greater than zero",
			map[string]string{"amount": "amount must be greater than zero"})
		return
	}

	tx, err := s.store.Deposit(userID, req.Amount, req.PaymentMethod, req.Wallet)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	if req.SaveCard && req.CardNumber != "" {
		_, _ = s.store.SaveCard(userID, req.CardNumber, req.ExpiryDate)
	}
	writeData(w, http.StatusOK, tx, "deposit created")
}

// handleWithdraw handles POST /payments/withdraw. Insufficient funds is
// reported as an envelope failure on HTTP 200, matching the production
// backend's habit of burying business errors in successful responses.
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())

	var req withdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be greater than zero",
			map[string]string{"amount": "amount must be greater than zero"})
		return
	}

	tx, err := s.store.Withdraw(userID, req.Amount, req.PaymentMethod, req.Wallet)
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			writeError(w, http.StatusOK, "insufficient funds", nil)
			return
		}
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, tx, "withdrawal created")
}

// handlePaymentHistory handles GET /payments/history.
func (s *Server) handlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	items, pagination, err := s.store.Transactions(userID, page, limit, q.Get("type"), q.Get("status"))
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"data":       items,
		"pagination": pagination,
	}, "")
}

// handleSavedCards handles GET /payments/cards.
func (s *Server) handleSavedCards(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	cards, err := s.store.Cards(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, cards, "")
}

// handleDeleteCard handles DELETE /payments/cards/{cardID}.
func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	cardID := chi.URLParam(r, "cardID")

	if err := s.store.DeleteCard(userID, cardID); err != nil {
		writeError(w, http.StatusNotFound, "card not found", nil)
		return
	}
	writeData(w, http.StatusOK, nil, "card deleted")
}
