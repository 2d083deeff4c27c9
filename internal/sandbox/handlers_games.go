package sandbox

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kazino55/client/internal/model"
)

// handleGames handles GET /games with filtering and pagination.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var featured *bool
	if raw := q.Get("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err == nil {
			featured = &v
		}
	}
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	games, pagination := s.store.Games(q.Get("category"), q.Get("provider"), q.Get("search"), featured, page, limit)
	writeData(w, http.StatusOK, map[string]interface{}{
		"data":       games,
		"pagination": pagination,
	}, "")
}

// handleFeaturedGames handles GET /games/featured.
func (s *Server) handleFeaturedGames(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.FeaturedGames(), "")
}

// handlePopularGames handles GET /games/popular.
func (s *Server) handlePopularGames(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.PopularGames(10), "")
}

// handleGameCategories handles GET /games/categories.
func (s *Server) handleGameCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.Config().GameCategories, "")
}

// handleGameDetails handles GET /games/{gameID}.
func (s *Server) handleGameDetails(w http.ResponseWriter, r *http.Request) {
	game, err := s.store.GameByID(chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "game not found", nil)
		return
	}
	writeData(w, http.StatusOK, game, "")
}

// handleLaunchGame handles POST /games/{gameID}/launch (protected).
func (s *Server) handleLaunchGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	game, err := s.store.GameByID(gameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "game not found", nil)
		return
	}

	var body struct {
		Mode string `json:"mode"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	mode := body.Mode
	if mode != "demo" {
		mode = "real"
	}

	sessionID := uuid.NewString()
	writeData(w, http.StatusOK, model.LaunchSession{
		GameURL:   "https://games.kazino55.net/launch/" + game.ID + "?mode=" + mode + "&session=" + sessionID,
		SessionID: sessionID,
	}, "")
}

// handleRecentWinners handles GET /winners/recent.
func (s *Server) handleRecentWinners(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}
	writeData(w, http.StatusOK, s.store.Winners(limit), "")
}

// handleJackpots handles GET /jackpots.
func (s *Server) handleJackpots(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.Jackpots(), "")
}

// handleConfig handles GET /config.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.Config(), "")
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, model.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	}, "")
}

// handleBonuses handles GET /bonuses.
func (s *Server) handleBonuses(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	bonuses, err := s.store.Bonuses(userID, false)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, bonuses, "")
}

// handleClaimBonus handles POST /bonuses/{bonusID}/claim.
func (s *Server) handleClaimBonus(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	bonus, err := s.store.ClaimBonus(userID, chi.URLParam(r, "bonusID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	writeData(w, http.StatusOK, bonus, "bonus claimed")
}

// handleBonusHistory handles GET /bonuses/history.
func (s *Server) handleBonusHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	bonuses, err := s.store.Bonuses(userID, true)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, bonuses, "")
}

// handleCreateTicket handles POST /support/tickets.
func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())

	var req struct {
		Subject  string `json:"subject"`
		Message  string `json:"message"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Subject == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "subject and message are required", nil)
		return
	}

	ticket, err := s.store.CreateTicket(userID, req.Subject, req.Message, req.Category)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, ticket, "ticket created")
}

// handleTickets handles GET /support/tickets.
func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())
	tickets, err := s.store.Tickets(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeData(w, http.StatusOK, tickets, "")
}

// handleAddTicketMessage handles POST /support/tickets/{ticketID}/messages.
func (s *Server) handleAddTicketMessage(w http.ResponseWriter, r *http.Request) {
	userID, _ := requestUserID(r.Context())

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required", nil)
		return
	}

	ticket, err := s.store.AddTicketMessage(userID, chi.URLParam(r, "ticketID"), req.Message)
	if err != nil {
		writeError(w, http.StatusNotFound, "ticket not found", nil)
		return
	}
	writeData(w, http.StatusOK, ticket, "")
}
