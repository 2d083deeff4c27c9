// Package sandbox is an in-memory stand-in for the production casino backend.
// It serves the same REST surface with the same response envelope so the
// client can be developed and integration-tested with zero infrastructure.
package sandbox

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Server bundles the sandbox state and handlers.
type Server struct {
	store        *Store
	tokens       *TokenService
	refreshTTL   time.Duration
	loginLimiter *rateLimiter
}

// Options configure the sandbox.
type Options struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// New creates a sandbox server with a freshly seeded store.
func New(opts Options) *Server {
	accessTTL := opts.AccessTTL
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := opts.RefreshTTL
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	secret := opts.JWTSecret
	if secret == "" {
		secret = "sandbox-only-secret-not-for-production"
	}

	return &Server{
		store:        NewStore(),
		tokens:       NewTokenService(secret, accessTTL),
		refreshTTL:   refreshTTL,
		loginLimiter: newRateLimiter(10*time.Minute, 30),
	}
}

// Store exposes the backing store, used by tests to arrange state.
func (s *Server) Store() *Store {
	return s.store
}

// Router builds the chi router with the full API surface under /api/v1.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/config", s.handleConfig)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/register/quick", s.handleQuickRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.With(s.requireAuth).Post("/logout", s.handleLogout)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", s.handleGames)
			r.Get("/featured", s.handleFeaturedGames)
			r.Get("/popular", s.handlePopularGames)
			r.Get("/categories", s.handleGameCategories)
			r.Get("/{gameID}", s.handleGameDetails)
			r.With(s.requireAuth).Post("/{gameID}/launch", s.handleLaunchGame)
		})

		r.Get("/winners/recent", s.handleRecentWinners)
		r.Get("/jackpots", s.handleJackpots)

		// Protected routes (require valid JWT)
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/users/profile", s.handleProfile)
			r.Put("/users/profile", s.handleUpdateProfile)
			r.Put("/users/password", s.handleChangePassword)
			r.Get("/users/balance", s.handleBalance)
			r.Get("/users/statistics", s.handleStatistics)

			r.Post("/payments/deposit", s.handleDeposit)
			r.Post("/payments/withdraw", s.handleWithdraw)
			r.Get("/payments/history", s.handlePaymentHistory)
			r.Get("/payments/cards", s.handleSavedCards)
			r.Delete("/payments/cards/{cardID}", s.handleDeleteCard)

			r.Get("/bonuses", s.handleBonuses)
			r.Post("/bonuses/{bonusID}/claim", s.handleClaimBonus)
			r.Get("/bonuses/history", s.handleBonusHistory)

			r.Post("/support/tickets", s.handleCreateTicket)
			r.Get("/support/tickets", s.handleTickets)
			r.Post("/support/tickets/{ticketID}/messages", s.handleAddTicketMessage)
		})
	})

	return r
}
