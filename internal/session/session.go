package session

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kazino55/client/internal/model"
)

// Storage keys. These names are fixed; nothing outside this package may
// read or write them.
const (
	keyAuthToken    = "authToken"
	keyRefreshToken = "refreshToken"
	keyUser         = "user"
	keyIsLoggedIn   = "isLoggedIn"
	keyLanguage     = "language"
	keySavedCards   = "savedCards"
)

// Manager is the single source of truth for session credentials and the
// cached profile. All consumers depend on it instead of reaching into
// ambient storage.
type Manager struct {
	store Store
}

// NewManager creates a Manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// SetTokens persists the token pair, overwriting any prior pair. The token
// contents are not validated here.
func (m *Manager) SetTokens(access, refresh string) {
	m.store.Set(keyAuthToken, access)
	m.store.Set(keyRefreshToken, refresh)
}

// Token returns the persisted access token, or "" if absent.
func (m *Manager) Token() string {
	v, _ := m.store.Get(keyAuthToken)
	return v
}

// RefreshToken returns the persisted refresh token, or "" if absent.
func (m *Manager) RefreshToken() string {
	v, _ := m.store.Get(keyRefreshToken)
	return v
}

// ClearTokens removes both tokens. Idempotent.
func (m *Manager) ClearTokens() {
	m.store.Delete(keyAuthToken)
	m.store.Delete(keyRefreshToken)
}

// IsAuthenticated reports whether an access token is present and its declared
// expiry lies in the future. The token payload is decoded without signature
// verification; this is a client-side convenience check only and does not
// guarantee the backend will accept the token. Malformed tokens report false.
func (m *Manager) IsAuthenticated() bool {
	raw := m.Token()
	if raw == "" {
		return false
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// SetUser caches the profile and marks the session logged in.
func (m *Manager) SetUser(u *model.User) {
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	m.store.Set(keyUser, string(data))
	m.store.Set(keyIsLoggedIn, "true")
}

// User returns the cached profile. The cache is considered stale and is
// cleared when the logged-in flag is missing or the token pair no longer
// authenticates.
func (m *Manager) User() (*model.User, bool) {
	flag, _ := m.store.Get(keyIsLoggedIn)
	raw, ok := m.store.Get(keyUser)
	if flag != "true" || !ok || !m.IsAuthenticated() {
		m.store.Delete(keyUser)
		m.store.Delete(keyIsLoggedIn)
		return nil, false
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		m.store.Delete(keyUser)
		m.store.Delete(keyIsLoggedIn)
		return nil, false
	}
	return &u, true
}

// ClearSession removes tokens, cached profile and the logged-in flag.
// Language and saved cards are user preferences and survive.
func (m *Manager) ClearSession() {
	m.ClearTokens()
	m.store.Delete(keyUser)
	m.store.Delete(keyIsLoggedIn)
}

// Language returns the persisted UI language, or "" if none was chosen.
func (m *Manager) Language() string {
	v, _ := m.store.Get(keyLanguage)
	return v
}

// SetLanguage persists the UI language.
func (m *Manager) SetLanguage(code string) {
	m.store.Set(keyLanguage, code)
}

// SavedCards returns the locally remembered payment cards.
func (m *Manager) SavedCards() []model.SavedCard {
	raw, ok := m.store.Get(keySavedCards)
	if !ok {
		return nil
	}
	var cards []model.SavedCard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil
	}
	return cards
}

// SetSavedCards overwrites the locally remembered payment cards.
func (m *Manager) SetSavedCards(cards []model.SavedCard) {
	data, err := json.Marshal(cards)
	if err != nil {
		return
	}
	m.store.Set(keySavedCards, string(data))
}
