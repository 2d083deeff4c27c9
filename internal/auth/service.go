// Package auth orchestrates the client-side session lifecycle: login,
// registration, logout and the bookkeeping they share (token storage,
// profile cache, session-changed notification).
package auth

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/kazino55/client/internal/api"
	"github.com/kazino55/client/internal/event"
	"github.com/kazino55/client/internal/i18n"
	"github.com/kazino55/client/internal/logger"
	"github.com/kazino55/client/internal/model"
	"github.com/kazino55/client/internal/session"
)

// Service exposes coarse-grained session operations to the UI layer.
type Service struct {
	api      *api.Client
	session  *session.Manager
	bus      *event.Bus
	validate *validator.Validate
}

// NewService wires the lifecycle to its collaborators.
func NewService(apiClient *api.Client, sess *session.Manager, bus *event.Bus) *Service {
	return &Service{
		api:      apiClient,
		session:  sess,
		bus:      bus,
		validate: validator.New(),
	}
}

// lang returns the stored UI language, defaulting when none is chosen.
func (s *Service) lang() string {
	if l := s.session.Language(); l != "" {
		return l
	}
	return i18n.DefaultLanguage
}

// Login validates the form, authenticates, and on success stores the token
// pair, caches the profile and publishes exactly one session-changed event.
func (s *Service) Login(ctx context.Context, form LoginForm) (*model.User, error) {
	if err := validateForm(s.validate, form, s.lang()); err != nil {
		return nil, err
	}

	result, err := s.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		return nil, s.fallback(err, "error.login")
	}

	s.completeLogin(result)
	return &result.User, nil
}

// Register validates the form and creates a full account. Success has the
// same side effects as Login.
func (s *Service) Register(ctx context.Context, form RegisterForm) (*model.User, error) {
	if err := validateForm(s.validate, form, s.lang()); err != nil {
		return nil, err
	}

	result, err := s.api.Register(ctx, api.RegisterRequest{
		Email:          form.Email,
		Password:       form.Password,
		Nickname:       form.Nickname,
		AgreeTerms:     form.AgreeTerms,
		AgreeMarketing: form.AgreeMarketing,
	})
	if err != nil {
		return nil, s.fallback(err, "error.register")
	}

	s.completeLogin(result)
	return &result.User, nil
}

// QuickRegister creates a one-click account. The returned result carries the
// generated credentials so the UI can show them once.
func (s *Service) QuickRegister(ctx context.Context, agreeTerms bool) (*model.AuthResult, error) {
	if !agreeTerms {
		return nil, &api.Error{
			Kind:    api.KindValidation,
			Message: i18n.T(s.lang(), "error.generic"),
			Fields:  map[string]string{"agreeTerms": i18n.T(s.lang(), "validate.terms")},
		}
	}

	result, err := s.api.QuickRegister(ctx, agreeTerms)
	if err != nil {
		return nil, s.fallback(err, "error.register")
	}

	s.completeLogin(result)
	return result, nil
}

// Logout tears the session down. The backend call is best-effort: its
// failure is logged and swallowed, local teardown happens unconditionally.
func (s *Service) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		logger.L().Warnw("backend logout failed", "error", err)
	}

	s.session.ClearSession()
	s.bus.Publish(event.Session{User: nil})
}

// CurrentUser returns the cached profile if the session still authenticates.
func (s *Service) CurrentUser() (*model.User, bool) {
	return s.session.User()
}

// RefreshProfile re-fetches the profile and updates the cache.
func (s *Service) RefreshProfile(ctx context.Context) (*model.User, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		return nil, err
	}
	s.session.SetUser(user)
	return user, nil
}

func (s *Service) completeLogin(result *model.AuthResult) {
	s.session.SetTokens(result.Token, result.RefreshToken)
	s.session.SetUser(&result.User)
	s.bus.Publish(event.Session{User: &result.User})
}

// fallback substitutes a localized generic message when the backend gave no
// human-readable one. Field-level errors pass through untouched so forms can
// distribute them.
func (s *Service) fallback(err error, key string) error {
	apiErr, ok := api.AsError(err)
	if !ok {
		return err
	}
	if apiErr.Message == "" && len(apiErr.Fields) == 0 {
		apiErr.Message = i18n.T(s.lang(), key)
	}
	return apiErr
}
