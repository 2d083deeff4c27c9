package model

import (
	"time"
)

// User is the player profile as returned by the backend and cached locally.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Nickname         string     `json:"nickname"`
	Balance          float64    `json:"balance"`
	Level            int        `json:"level"`
	IsVerified       bool       `json:"isVerified"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty"`
	TotalDeposits    float64    `json:"totalDeposits,omitempty"`
	TotalWithdrawals float64    `json:"totalWithdrawals,omitempty"`
	TotalWinnings    float64    `json:"totalWinnings,omitempty"`
	GamesPlayed      int        `json:"gamesPlayed,omitempty"`
}

// Credentials are the generated login credentials returned by quick registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the payload of a successful login, registration or refresh.
type AuthResult struct {
	User         User         `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	Credentials  *Credentials `json:"credentials,omitempty"`
}

// Game is a catalog entry.
type Game struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Provider  string    `json:"provider"`
	Image     string    `json:"image"`
	Featured  bool      `json:"featured"`
	Jackpot   float64   `json:"jackpot,omitempty"`
	RTP       float64   `json:"rtp"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Winner is one entry of the recent-winners ticker feed.
type Winner struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Game      string    `json:"game"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// WalletBalance is the balance of a single wallet.
type WalletBalance struct {
	Wallet      string    `json:"wallet"`
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Balance is the wallet balance payload. The backend is inconsistent about
// which field carries the headline number, so Balance/TotalBalance are
// pointers and Total resolves the precedence in one place.
type Balance struct {
	Wallet       string          `json:"wallet,omitempty"`
	Wallets      []WalletBalance `json:"wallets,omitempty"`
	Balance      *float64        `json:"balance,omitempty"`
	TotalBalance *float64        `json:"totalBalance,omitempty"`
	Currency     string          `json:"currency"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

// Total returns the headline balance: totalBalance if present, else balance,
// else zero. Consumers must use this instead of reading the fields directly.
func (b *Balance) Total() float64 {
	if b == nil {
		return 0
	}
	if b.TotalBalance != nil {
		return *b.TotalBalance
	}
	if b.Balance != nil {
		return *b.Balance
	}
	return 0
}

// PaymentTransaction is a deposit or withdrawal record.
type PaymentTransaction struct {
	TransactionID string    `json:"transactionId"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        string    `json:"status"`
	PaymentURL    string    `json:"paymentUrl,omitempty"`
	Wallet        string    `json:"wallet"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Pagination describes a page of a list endpoint.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// SavedCard is a masked payment card kept for reuse.
type SavedCard struct {
	ID         string    `json:"id"`
	CardNumber string    `json:"cardNumber"`
	ExpiryDate string    `json:"expiryDate"`
	AddedAt    time.Time `json:"addedAt"`
}

// LaunchSession is the result of launching a game.
type LaunchSession struct {
	GameURL   string `json:"gameUrl"`
	SessionID string `json:"sessionId"`
}

// Jackpot is a progressive jackpot ticker entry.
type Jackpot struct {
	ID       string  `json:"id"`
	Game     string  `json:"game"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// UserStatistics is the aggregate play statistics of a player.
type UserStatistics struct {
	TotalDeposits    float64 `json:"totalDeposits"`
	TotalWithdrawals float64 `json:"totalWithdrawals"`
	TotalWinnings    float64 `json:"totalWinnings"`
	GamesPlayed      int     `json:"gamesPlayed"`
}

// Maintenance is the platform maintenance window, if any.
type Maintenance struct {
	IsActive     bool       `json:"isActive"`
	Message      string     `json:"message,omitempty"`
	EstimatedEnd *time.Time `json:"estimatedEnd,omitempty"`
}

// Features are the platform feature flags.
type Features struct {
	BrombetWalletEnabled bool `json:"brombetWalletEnabled"`
	AviatorEnabled       bool `json:"aviatorEnabled"`
	XliveEnabled         bool `json:"xliveEnabled"`
}

// PlatformConfig is the public platform configuration.
type PlatformConfig struct {
	Currencies     []string    `json:"currencies"`
	Languages      []string    `json:"languages"`
	PaymentMethods []string    `json:"paymentMethods"`
	GameCategories []string    `json:"gameCategories"`
	Maintenance    Maintenance `json:"maintenance"`
	Wallets        []string    `json:"wallets"`
	Features       Features    `json:"features"`
}

// HealthStatus is the backend health probe response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Bonus is a claimable player bonus.
type Bonus struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	ClaimedAt *time.Time `json:"claimedAt,omitempty"`
}

// TicketMessage is one message in a support ticket thread.
type TicketMessage struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupportTicket is a player support request.
type SupportTicket struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Category  string          `json:"category,omitempty"`
	Status    string          `json:"status"`
	Messages  []TicketMessage `json:"messages,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
