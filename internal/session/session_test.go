package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazino55/client/internal/model"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager(NewMemoryStore())

	assert.Empty(t, m.Token())
	assert.Empty(t, m.RefreshToken())

	m.SetTokens("access", "refresh")
	assert.Equal(t, "access", m.Token())
	assert.Equal(t, "refresh", m.RefreshToken())

	m.ClearTokens()
	assert.Empty(t, m.Token())
	assert.Empty(t, m.RefreshToken())

	// clearing twice must not panic
	m.ClearTokens()
}

func TestIsAuthenticated(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"no token", "", false},
		{"garbage token", "not-a-jwt", false},
		{"expired token", "", false},
		{"valid token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(NewMemoryStore())
			token := tt.token
			switch tt.name {
			case "expired token":
				token = mintToken(t, time.Now().Add(-time.Minute))
			case "valid token":
				token = mintToken(t, time.Now().Add(time.Hour))
			}
			if token != "" {
				m.SetTokens(token, "refresh")
			}
			assert.Equal(t, tt.want, m.IsAuthenticated())
		})
	}
}

func TestIsAuthenticatedNoExpiryClaim(t *testing.T) {
	m := NewManager(NewMemoryStore())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	m.SetTokens(signed, "refresh")
	assert.False(t, m.IsAuthenticated(), "a token without exp must not authenticate")
}

func TestUserCache(t *testing.T) {
	m := NewManager(NewMemoryStore())
	m.SetTokens(mintToken(t, time.Now().Add(time.Hour)), "refresh")

	u := &model.User{ID: "u1", Email: "a@b.c", Nickname: "tester", Balance: 10}
	m.SetUser(u)

	got, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, "tester", got.Nickname)
	assert.Equal(t, 10.0, got.Balance)
}

func TestUserCacheStaleWhenTokenExpired(t *testing.T) {
	m := NewManager(NewMemoryStore())
	m.SetTokens(mintToken(t, time.Now().Add(-time.Minute)), "refresh")
	m.SetUser(&model.User{ID: "u1", Nickname: "tester"})

	_, ok := m.User()
	assert.False(t, ok, "an expired token must invalidate the cached profile")

	// the cache itself is gone, not just hidden
	m.SetTokens(mintToken(t, time.Now().Add(time.Hour)), "refresh")
	_, ok = m.User()
	assert.False(t, ok)
}

func TestClearSessionPreservesPreferences(t *testing.T) {
	m := NewManager(NewMemoryStore())
	m.SetTokens(mintToken(t, time.Now().Add(time.Hour)), "refresh")
	m.SetUser(&model.User{ID: "u1", Nickname: "tester"})
	m.SetLanguage("ru")
	m.SetSavedCards([]model.SavedCard{{ID: "c1", CardNumber: "**** **** **** 1234"}})

	m.ClearSession()

	assert.Empty(t, m.Token())
	assert.Empty(t, m.RefreshToken())
	_, ok := m.User()
	assert.False(t, ok)

	assert.Equal(t, "ru", m.Language())
	cards := m.SavedCards()
	require.Len(t, cards, 1)
	assert.Equal(t, "c1", cards[0].ID)
}

func TestSavedCardsEmpty(t *testing.T) {
	m := NewManager(NewMemoryStore())
	assert.Nil(t, m.SavedCards())
}
