package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazino55/client/internal/api"
	"github.com/kazino55/client/internal/event"
	"github.com/kazino55/client/internal/model"
	"github.com/kazino55/client/internal/session"
)

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestService(t *testing.T, handler http.Handler) (*Service, *session.Manager, *event.Bus, *int32) {
	t.Helper()
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	sess := session.NewManager(session.NewMemoryStore())
	bus := event.NewBus()
	client := api.New(sess, bus, api.Options{BaseURL: srv.URL})
	return NewService(client, sess, bus), sess, bus, &requests
}

func authResultBody(t *testing.T, user model.User) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"success": true,
		"data": model.AuthResult{
			User:         user,
			Token:        testToken(t),
			RefreshToken: "refresh-1",
		},
		"timestamp": "2025-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	return data
}

func TestLoginValidationNeverTouchesNetwork(t *testing.T) {
	svc, _, _, requests := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		name  string
		form  LoginForm
		field string
	}{
		{"empty email", LoginForm{Password: "secret1"}, "email"},
		{"bad email", LoginForm{Email: "not-an-email", Password: "secret1"}, "email"},
		{"empty password", LoginForm{Email: "a@b.c"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.form)
			apiErr, ok := api.AsError(err)
			require.True(t, ok)
			assert.Equal(t, api.KindValidation, apiErr.Kind)
			assert.NotEmpty(t, apiErr.Fields[tt.field])
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(requests), "validation failures must not reach the backend")
}

func TestLoginValidationMessagesLocalized(t *testing.T) {
	svc, sess, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// default language is Azerbaijani
	_, err := svc.Login(context.Background(), LoginForm{Email: "bad", Password: "x"})
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "E-mail formatı düzgün deyil", apiErr.Fields["email"])

	sess.SetLanguage("en")
	_, err = svc.Login(context.Background(), LoginForm{Email: "bad", Password: "x"})
	apiErr, ok = api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid e-mail format", apiErr.Fields["email"])
}

func TestLoginSuccessSideEffects(t *testing.T) {
	user := model.User{ID: "u1", Email: "a@b.c", Nickname: "tester", Balance: 100}
	svc, sess, bus, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write(authResultBody(t, user))
	}))

	var events []event.Session
	bus.Subscribe(func(s event.Session) { events = append(events, s) })

	got, err := svc.Login(context.Background(), LoginForm{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tester", got.Nickname)

	assert.NotEmpty(t, sess.Token())
	assert.Equal(t, "refresh-1", sess.RefreshToken())
	cached, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, "tester", cached.Nickname)

	require.Len(t, events, 1, "exactly one session-changed event per login")
	require.NotNil(t, events[0].User)
	assert.Equal(t, "u1", events[0].User.ID)
}

func TestLoginBackendFailureGetsLocalizedFallback(t *testing.T) {
	svc, _, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"","timestamp":"2025-01-01T00:00:00Z"}`))
	}))

	_, err := svc.Login(context.Background(), LoginForm{Email: "a@b.c", Password: "secret1"})
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Daxil olmaq mümkün olmadı", apiErr.Message)
}

func TestLoginBackendMessagePassesThrough(t *testing.T) {
	svc, _, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"account suspended","timestamp":"2025-01-01T00:00:00Z"}`))
	}))

	_, err := svc.Login(context.Background(), LoginForm{Email: "a@b.c", Password: "secret1"})
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "account suspended", apiErr.Message)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, requests := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := svc.Register(context.Background(), RegisterForm{
		Email:           "a@b.c",
		Nickname:        "tester",
		Password:        "longenough",
		ConfirmPassword: "different",
		AgreeTerms:      true,
	})
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, api.KindValidation, apiErr.Kind)
	assert.NotEmpty(t, apiErr.Fields["confirmPassword"])

	_, err = svc.Register(context.Background(), RegisterForm{
		Email:           "a@b.c",
		Nickname:        "tester",
		Password:        "short",
		ConfirmPassword: "short",
		AgreeTerms:      true,
	})
	apiErr, ok = api.AsError(err)
	require.True(t, ok)
	assert.NotEmpty(t, apiErr.Fields["password"])

	_, err = svc.Register(context.Background(), RegisterForm{
		Email:           "a@b.c",
		Nickname:        "tester",
		Password:        "longenough",
		ConfirmPassword: "longenough",
		AgreeTerms:      false,
	})
	apiErr, ok = api.AsError(err)
	require.True(t, ok)
	assert.NotEmpty(t, apiErr.Fields["agreeTerms"])

	assert.Equal(t, int32(0), atomic.LoadInt32(requests))
}

func TestQuickRegisterRequiresTerms(t *testing.T) {
	svc, _, _, requests := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := svc.QuickRegister(context.Background(), false)
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, api.KindValidation, apiErr.Kind)
	assert.NotEmpty(t, apiErr.Fields["agreeTerms"])
	assert.Equal(t, int32(0), atomic.LoadInt32(requests))
}

func TestQuickRegisterReturnsCredentials(t *testing.T) {
	user := model.User{ID: "u2", Email: "player000123@kazino55.net", Nickname: "Player000123"}
	svc, _, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/quick", r.URL.Path)
		data, _ := json.Marshal(map[string]any{
			"success": true,
			"data": model.AuthResult{
				User:         user,
				Token:        testToken(t),
				RefreshToken: "refresh-1",
				Credentials:  &model.Credentials{Email: user.Email, Password: "generated"},
			},
			"timestamp": "2025-01-01T00:00:00Z",
		})
		w.Write(data)
	}))

	result, err := svc.QuickRegister(context.Background(), true)
	require.NoError(t, err)
	require.NotNil(t, result.Credentials)
	assert.Equal(t, "generated", result.Credentials.Password)
}

func TestLogoutAlwaysClearsLocally(t *testing.T) {
	svc, sess, bus, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// backend logout failing must not keep the local session alive
		w.WriteHeader(http.StatusInternalServerError)
	}))
	sess.SetTokens(testToken(t), "refresh-1")
	sess.SetUser(&model.User{ID: "u1"})

	var events []event.Session
	bus.Subscribe(func(s event.Session) { events = append(events, s) })

	svc.Logout(context.Background())

	assert.Empty(t, sess.Token())
	_, ok := sess.User()
	assert.False(t, ok)
	require.NotEmpty(t, events)
	assert.Nil(t, events[len(events)-1].User)
}

func TestCurrentUserRequiresLiveToken(t *testing.T) {
	svc, sess, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, ok := svc.CurrentUser()
	assert.False(t, ok)

	sess.SetTokens(testToken(t), "refresh-1")
	sess.SetUser(&model.User{ID: "u1", Nickname: "tester"})
	user, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "tester", user.Nickname)
}
