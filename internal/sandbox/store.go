package sandbox

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kazino55/client/internal/model"
)

var (
	// ErrEmailTaken is returned when registering an already used email.
	ErrEmailTaken = errors.New("email already used")
	// ErrNotFound is returned for unknown users, games, cards or tickets.
	ErrNotFound = errors.New("not found")
	// ErrBadCredentials is returned for a failed login.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrRefreshInvalid is returned for unknown, expired or revoked refresh tokens.
	ErrRefreshInvalid = errors.New("invalid or expired refresh token")
)

// account is a registered player with everything the sandbox tracks for it.
type account struct {
	user         model.User
	passwordHash []byte
	transactions []model.PaymentTransaction
	cards        []model.SavedCard
	bonuses      []model.Bonus
	tickets      []model.SupportTicket
}

// refreshSession is a stored (hashed) refresh token.
type refreshSession struct {
	userID    uuid.UUID
	tokenHash string
	expiresAt time.Time
	revokedAt *time.Time
}

// Store holds all sandbox state in memory. It replaces the production
// database so the client can run with zero infrastructure.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*account
	byEmail  map[string]uuid.UUID
	refresh  map[string]*refreshSession
	games    []model.Game
	winners  []model.Winner
	config   model.PlatformConfig
}

// NewStore creates a store seeded with the demo catalog and winners feed.
func NewStore() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]*account),
		byEmail:  make(map[string]uuid.UUID),
		refresh:  make(map[string]*refreshSession),
		games:    seedGames(),
		winners:  seedWinners(),
		config:   seedConfig(),
	}
}

// welcomeBonus is granted to every new account.
func welcomeBonus() model.Bonus {
	return model.Bonus{
		ID:     uuid.NewString(),
		Title:  "Welcome bonus",
		Amount: 50,
		Status: "available",
	}
}

// CreateUser registers a new account. New accounts start with a demo balance
// so deposits and withdrawals can be exercised immediately.
func (s *Store) CreateUser(email, nickname, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.byEmail[key]; exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id := uuid.New()
	now := time.Now()
	acc := &account{
		user: model.User{
			ID:        id.String(),
			Email:     key,
			Nickname:  nickname,
			Balance:   100,
			Level:     1,
			CreatedAt: now,
		},
		passwordHash: hash,
		bonuses:      []model.Bonus{welcomeBonus()},
	}
	s.accounts[id] = acc
	s.byEmail[key] = id

	user := acc.user
	return &user, nil
}

// Authenticate checks credentials and stamps the last login time.
func (s *Store) Authenticate(email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrBadCredentials
	}
	acc := s.accounts[id]
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, ErrBadCredentials
	}

	now := time.Now()
	acc.user.LastLoginAt = &now
	user := acc.user
	return &user, nil
}

// User returns a copy of the stored profile.
func (s *Store) User(id uuid.UUID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := acc.user
	return &user, nil
}

// UpdateUser applies non-empty profile fields and returns the new profile.
func (s *Store) UpdateUser(id uuid.UUID, email, nickname string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if nickname != "" {
		acc.user.Nickname = nickname
	}
	if email != "" {
		key := strings.ToLower(strings.TrimSpace(email))
		if other, exists := s.byEmail[key]; exists && other != id {
			return nil, ErrEmailTaken
		}
		delete(s.byEmail, acc.user.Email)
		acc.user.Email = key
		s.byEmail[key] = id
	}
	user := acc.user
	return &user, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *Store) ChangePassword(id uuid.UUID, current, updated string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return ErrNotFound
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(current)) != nil {
		return ErrBadCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	acc.passwordHash = hash
	return nil
}

// Deposit credits the balance and records a completed transaction.
func (s *Store) Deposit(id uuid.UUID, amount float64, method, wallet string) (*model.PaymentTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	acc.user.Balance += amount
	acc.user.TotalDeposits += amount
	tx := model.PaymentTransaction{
		TransactionID: uuid.NewString(),
		Type:          "deposit",
		Amount:        amount,
		Currency:      "AZN",
		PaymentMethod: method,
		Status:        "completed",
		Wallet:        wallet,
		CreatedAt:     time.Now(),
	}
	acc.transactions = append(acc.transactions, tx)
	return &tx, nil
}

// Withdraw debits the balance when funds suffice.
func (s *Store) Withdraw(id uuid.UUID, amount float64, method, wallet string) (*model.PaymentTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if acc.user.Balance < amount {
		return nil, ErrInsufficientFunds
	}

	acc.user.Balance -= amount
	acc.user.TotalWithdrawals += amount
	tx := model.PaymentTransaction{
		TransactionID: uuid.NewString(),
		Type:          "withdrawal",
		Amount:        amount,
		Currency:      "AZN",
		PaymentMethod: method,
		Status:        "pending",
		Wallet:        wallet,
		CreatedAt:     time.Now(),
	}
	acc.transactions = append(acc.transactions, tx)
	return &tx, nil
}

// Transactions lists an account's history, newest first, paginated.
func (s *Store) Transactions(id uuid.UUID, page, limit int, txType, status string) ([]model.PaymentTransaction, model.Pagination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, model.Pagination{}, ErrNotFound
	}

	filtered := make([]model.PaymentTransaction, 0, len(acc.transactions))
	for _, tx := range acc.transactions {
		if txType != "" && tx.Type != txType {
			continue
		}
		if status != "" && tx.Status != status {
			continue
		}
		filtered = append(filtered, tx)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	items, pagination := paginate(filtered, page, limit)
	return items, pagination, nil
}

// SaveCard stores a masked card for reuse.
func (s *Store) SaveCard(id uuid.UUID, cardNumber, expiryDate string) (*model.SavedCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	card := model.SavedCard{
		ID:         uuid.NewString(),
		CardNumber: maskCard(cardNumber),
		ExpiryDate: expiryDate,
		AddedAt:    time.Now(),
	}
	acc.cards = append(acc.cards, card)
	return &card, nil
}

// Cards lists an account's saved cards.
func (s *Store) Cards(id uuid.UUID) ([]model.SavedCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]model.SavedCard(nil), acc.cards...), nil
}

// DeleteCard removes a saved card.
func (s *Store) DeleteCard(id uuid.UUID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return ErrNotFound
	}
	for i, card := range acc.cards {
		if card.ID == cardID {
			acc.cards = append(acc.cards[:i], acc.cards[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Games filters and paginates the catalog. An empty search term means no
// filter; the full page is returned.
func (s *Store) Games(category, provider, search string, featured *bool, page, limit int) ([]model.Game, model.Pagination) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]model.Game, 0, len(s.games))
	for _, g := range s.games {
		if category != "" && g.Category != category {
			continue
		}
		if provider != "" && !strings.EqualFold(g.Provider, provider) {
			continue
		}
		if featured != nil && g.Featured != *featured {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
			continue
		}
		filtered = append(filtered, g)
	}
	return paginate(filtered, page, limit)
}

// GameByID looks up a single catalog entry.
func (s *Store) GameByID(gameID string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.games {
		if g.ID == gameID {
			game := g
			return &game, nil
		}
	}
	return nil, ErrNotFound
}

// FeaturedGames returns the curated selection.
func (s *Store) FeaturedGames() []model.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Game, 0)
	for _, g := range s.games {
		if g.Featured {
			out = append(out, g)
		}
	}
	return out
}

// PopularGames approximates popularity by RTP, best first.
func (s *Store) PopularGames(limit int) []model.Game {
	s.mu.RLock()
	games := append([]model.Game(nil), s.games...)
	s.mu.RUnlock()

	sort.Slice(games, func(i, j int) bool { return games[i].RTP > games[j].RTP })
	if limit > 0 && limit < len(games) {
		games = games[:limit]
	}
	return games
}

// Winners returns the most recent winners, newest first.
func (s *Store) Winners(limit int) []model.Winner {
	s.mu.RLock()
	winners := append([]model.Winner(nil), s.winners...)
	s.mu.RUnlock()

	sort.Slice(winners, func(i, j int) bool {
		return winners[i].Timestamp.After(winners[j].Timestamp)
	})
	if limit > 0 && limit < len(winners) {
		winners = winners[:limit]
	}
	return winners
}

// Jackpots derives the jackpot ticker from the catalog.
func (s *Store) Jackpots() []model.Jackpot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Jackpot, 0)
	for _, g := range s.games {
		if g.Jackpot > 0 {
			out = append(out, model.Jackpot{
				ID:       g.ID,
				Game:     g.Name,
				Amount:   g.Jackpot,
				Currency: "AZN",
			})
		}
	}
	return out
}

// Config returns the platform configuration.
func (s *Store) Config() model.PlatformConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Bonuses lists an account's bonuses, optionally only claimed ones.
func (s *Store) Bonuses(id uuid.UUID, claimedOnly bool) ([]model.Bonus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.Bonus, 0, len(acc.bonuses))
	for _, b := range acc.bonuses {
		if claimedOnly && b.Status != "claimed" {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// ClaimBonus credits a bonus to the balance, once.
func (s *Store) ClaimBonus(id uuid.UUID, bonusID string) (*model.Bonus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range acc.bonuses {
		b := &acc.bonuses[i]
		if b.ID != bonusID {
			continue
		}
		if b.Status == "claimed" {
			return nil, errors.New("bonus already claimed")
		}
		now := time.Now()
		b.Status = "claimed"
		b.ClaimedAt = &now
		acc.user.Balance += b.Amount
		bonus := *b
		return &bonus, nil
	}
	return nil, ErrNotFound
}

// CreateTicket opens a support ticket with its first message.
func (s *Store) CreateTicket(id uuid.UUID, subject, message, category string) (*model.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now()
	ticket := model.SupportTicket{
		ID:       uuid.NewString(),
		Subject:  subject,
		Category: category,
		Status:   "open",
		Messages: []model.TicketMessage{{
			ID:        uuid.NewString(),
			From:      "user",
			Message:   message,
			CreatedAt: now,
		}},
		CreatedAt: now,
	}
	acc.tickets = append(acc.tickets, ticket)
	return &ticket, nil
}

// Tickets lists an account's support tickets.
func (s *Store) Tickets(id uuid.UUID) ([]model.SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]model.SupportTicket(nil), acc.tickets...), nil
}

// AddTicketMessage appends a message to an open ticket.
func (s *Store) AddTicketMessage(id uuid.UUID, ticketID, message string) (*model.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range acc.tickets {
		t := &acc.tickets[i]
		if t.ID != ticketID {
			continue
		}
		t.Messages = append(t.Messages, model.TicketMessage{
			ID:        uuid.NewString(),
			From:      "user",
			Message:   message,
			CreatedAt: time.Now(),
		})
		ticket := *t
		return &ticket, nil
	}
	return nil, ErrNotFound
}

// CreateRefresh stores a hashed refresh token for a user.
func (s *Store) CreateRefresh(userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[tokenHash] = &refreshSession{
		userID:    userID,
		tokenHash: tokenHash,
		expiresAt: expiresAt,
	}
}

// ConsumeRefresh validates and revokes a refresh token, returning its user.
// Each token is single-use; rotation issues a replacement.
func (s *Store) ConsumeRefresh(tokenHash string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.refresh[tokenHash]
	if !ok || sess.revokedAt != nil || time.Now().After(sess.expiresAt) {
		return uuid.Nil, ErrRefreshInvalid
	}
	now := time.Now()
	sess.revokedAt = &now
	return sess.userID, nil
}

// RevokeAllForUser revokes every active refresh session of a user (logout).
func (s *Store) RevokeAllForUser(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, sess := range s.refresh {
		if sess.userID == userID && sess.revokedAt == nil {
			sess.revokedAt = &now
		}
	}
}

// paginate slices items into the requested page with catalog defaults.
func paginate[T any](items []T, page, limit int) ([]T, model.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return items[start:end], model.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// maskCard keeps the last four digits of a card number.
func maskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) <= 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}
