package sandbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kazino55/client/internal/logger"
	"github.com/kazino55/client/internal/model"
)

type registerRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Nickname       string `json:"nickname"`
	AgreeTerms     bool   `json:"agreeTerms"`
	AgreeMarketing bool   `json:"agreeMarketing"`
}

type quickRegisterRequest struct {
	AgreeTerms bool `json:"agreeTerms"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// issuePair signs an access token and stores a fresh refresh token.
func (s *Server) issuePair(user *model.User) (*model.AuthResult, error) {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	access, err := s.tokens.Sign(userID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, hash, err := GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	s.store.CreateRefresh(userID, hash, time.Now().Add(s.refreshTTL))

	return &model.AuthResult{
		User:         *user,
		Token:        access,
		RefreshToken: refresh,
	}, nil
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded", nil)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	fields := make(map[string]string)
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "email is required"
	}
	if len(req.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if strings.TrimSpace(req.Nickname) == "" {
		fields["nickname"] = "nickname is required"
	}
	if !req.AgreeTerms {
		fields["agreeTerms"] = "terms must be accepted"
	}
	if len(fields) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	user, err := s.store.CreateUser(req.Email, req.Nickname, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "email already used",
				map[string]string{"email": "email already used"})
			return
		}
		logger.L().Errorw("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	result, err := s.issuePair(user)
	if err != nil {
		logger.L().Errorw("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	writeData(w, http.StatusOK, result, "registered")
}

// handleQuickRegister handles POST /auth/register/quick: a one-click account
// with generated credentials, returned once so the player can note them.
func (s *Server) handleQuickRegister(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded", nil)
		return
	}

	var req quickRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if !req.AgreeTerms {
		writeError(w, http.StatusBadRequest, "terms must be accepted",
			map[string]string{"agreeTerms": "terms must be accepted"})
		return
	}

	suffix := rand.Intn(1000000)
	email := fmt.Sprintf("player%06d@kazino55.net", suffix)
	nickname := fmt.Sprintf("Player%06d", suffix)
	password := uuid.NewString()[:12]

	user, err := s.store.CreateUser(email, nickname, password)
	if err != nil {
		logger.L().Errorw("quick register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	result, err := s.issuePair(user)
	if err != nil {
		logger.L().Errorw("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	result.Credentials = &model.Credentials{Email: email, Password: password}
	writeData(w, http.StatusOK, result, "registered")
}

// handleLogin handles POST /auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.allow(clientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded", nil)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	user, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		// 400 rather than 401: a failed login is a business error, not a
		// stale session, and must not trigger the client's refresh policy.
		writeError(w, http.StatusBadRequest, "invalid email or password", nil)
		return
	}

	result, err := s.issuePair(user)
	if err != nil {
		logger.L().Errorw("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed", nil)
		return
	}
	writeData(w, http.StatusOK, result, "logged in")
}

// handleRefresh handles POST /auth/refresh: single-use rotation.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		writeError(w, http.StatusBadRequest, "refreshToken is required", nil)
		return
	}

	userID, err := s.store.ConsumeRefresh(HashRefreshToken(req.RefreshToken))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired refresh token", nil)
		return
	}
	user, err := s.store.User(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "user not found", nil)
		return
	}

	result, err := s.issuePair(user)
	if err != nil {
		logger.L().Errorw("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "refresh failed", nil)
		return
	}
	writeData(w, http.StatusOK, result, "refreshed")
}

// handleLogout handles POST /auth/logout (protected).
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	s.store.RevokeAllForUser(userID)
	writeData(w, http.StatusOK, nil, "logged out")
}
