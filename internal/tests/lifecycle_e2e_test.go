package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazino55/client/internal/api"
	"github.com/kazino55/client/internal/auth"
	"github.com/kazino55/client/internal/event"
	"github.com/kazino55/client/internal/fetch"
)

const (
	testEmail    = "player@example.com"
	testPassword = "secret123"
)

// TestPlayerLifecycle runs the full flow a real player would: register,
// browse, deposit, withdraw, check history, launch a game, log out.
func TestPlayerLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("A_Health", func(t *testing.T) {
		health, err := env.API.Health(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ok", health.Status)
	})

	t.Run("B_PublicCatalog", func(t *testing.T) {
		page, err := env.API.Games(ctx, api.GameFilters{Limit: 20})
		require.NoError(t, err)
		assert.Len(t, page.Data, 20)
		assert.Greater(t, page.Pagination.Total, 20)

		featured, err := env.API.FeaturedGames(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, featured)

		winners, err := env.API.RecentWinners(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, winners, 5)

		jackpots, err := env.API.Jackpots(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, jackpots)
	})

	t.Run("C_Register", func(t *testing.T) {
		user, err := env.Auth.Register(ctx, auth.RegisterForm{
			Email:           testEmail,
			Nickname:        "player1",
			Password:        testPassword,
			ConfirmPassword: testPassword,
			AgreeTerms:      true,
		})
		require.NoError(t, err)
		assert.Equal(t, "player1", user.Nickname)
		assert.True(t, env.Session.IsAuthenticated())

		// duplicate registration surfaces a field error
		_, err = env.Auth.Register(ctx, auth.RegisterForm{
			Email:           testEmail,
			Nickname:        "player2",
			Password:        testPassword,
			ConfirmPassword: testPassword,
			AgreeTerms:      true,
		})
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		assert.NotEmpty(t, apiErr.Fields["email"])
	})

	t.Run("D_ProfileAndBalance", func(t *testing.T) {
		profile, err := env.API.Profile(ctx)
		require.NoError(t, err)
		assert.Equal(t, testEmail, profile.Email)

		balance, err := env.API.Balance(ctx)
		require.NoError(t, err)
		assert.Equal(t, 100.0, balance.Total(), "new accounts start with the demo balance")
	})

	t.Run("E_DepositAndWithdraw", func(t *testing.T) {
		tx, err := env.API.CreateDeposit(ctx, api.DepositRequest{
			Amount:        50,
			PaymentMethod: "card",
			CardNumber:    "4169123412345678",
			SaveCard:      true,
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", tx.Status)

		balance, err := env.API.Balance(ctx)
		require.NoError(t, err)
		assert.Equal(t, 150.0, balance.Total())

		withdrawal, err := env.API.CreateWithdrawal(ctx, api.WithdrawalRequest{
			Amount:        30,
			PaymentMethod: "card",
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", withdrawal.Status)

		// an over-balance withdrawal is an envelope failure on HTTP 200
		_, err = env.API.CreateWithdrawal(ctx, api.WithdrawalRequest{
			Amount:        99999,
			PaymentMethod: "card",
		})
		apiErr, ok := api.AsError(err)
		require.True(t, ok)
		assert.Equal(t, api.KindBusiness, apiErr.Kind)
		assert.Equal(t, "insufficient funds", apiErr.Message)

		cards, err := env.API.SavedCards(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "**** **** **** 5678", cards[0].CardNumber)
	})

	t.Run("F_History", func(t *testing.T) {
		page, err := env.API.PaymentHistory(ctx, api.HistoryParams{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, page.Data, 2)

		deposits, err := env.API.PaymentHistory(ctx, api.HistoryParams{Type: "deposit"})
		require.NoError(t, err)
		require.Len(t, deposits.Data, 1)
		assert.Equal(t, "deposit", deposits.Data[0].Type)
	})

	t.Run("G_LaunchGame", func(t *testing.T) {
		page, err := env.API.Games(ctx, api.GameFilters{Search: "starburst"})
		require.NoError(t, err)
		require.NotEmpty(t, page.Data)

		launch, err := env.API.LaunchGame(ctx, page.Data[0].ID, "")
		require.NoError(t, err)
		assert.Contains(t, launch.GameURL, "mode=real")
		assert.NotEmpty(t, launch.SessionID)

		demo, err := env.API.LaunchGame(ctx, page.Data[0].ID, "demo")
		require.NoError(t, err)
		assert.Contains(t, demo.GameURL, "mode=demo")
	})

	t.Run("H_Bonuses", func(t *testing.T) {
		bonuses, err := env.API.Bonuses(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, bonuses)

		claimed, err := env.API.ClaimBonus(ctx, bonuses[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "claimed", claimed.Status)

		history, err := env.API.BonusHistory(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, history)
	})

	t.Run("I_Logout", func(t *testing.T) {
		var events []event.Session
		unsubscribe := env.Bus.Subscribe(func(s event.Session) { events = append(events, s) })
		defer unsubscribe()

		env.Auth.Logout(ctx)
		assert.False(t, env.Session.IsAuthenticated())
		require.NotEmpty(t, events)
		assert.Nil(t, events[len(events)-1].User)

		// protected endpoints are gated again
		_, err := env.API.Profile(ctx)
		require.Error(t, err)
	})
}

// TestLoginAndRefreshRotation exercises the refresh-on-401 policy against
// real rotated single-use tokens.
func TestLoginAndRefreshRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Auth.Register(ctx, auth.RegisterForm{
		Email:           testEmail,
		Nickname:        "player1",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		AgreeTerms:      true,
	})
	require.NoError(t, err)
	env.Auth.Logout(ctx)

	user, err := env.Auth.Login(ctx, auth.LoginForm{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "player1", user.Nickname)

	// sabotage the access token; the next call must refresh and retry
	refreshBefore := env.Session.RefreshToken()
	env.Session.SetTokens("expired-access-token", refreshBefore)

	profile, err := env.API.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEmail, profile.Email)
	assert.NotEqual(t, "expired-access-token", env.Session.Token())
	assert.NotEqual(t, refreshBefore, env.Session.RefreshToken(), "refresh tokens rotate on use")

	// the consumed refresh token is dead: replaying the pair ends the session
	env.Session.SetTokens("expired-access-token", refreshBefore)
	_, err = env.API.Profile(ctx)
	require.Error(t, err)
	assert.True(t, api.IsAuthError(err))
	assert.Empty(t, env.Session.Token())
}

// TestBadLoginDoesNotTriggerRefresh confirms a failed login is a business
// error with the backend message intact.
func TestBadLoginDoesNotTriggerRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var events []event.Session
	env.Bus.Subscribe(func(s event.Session) { events = append(events, s) })

	_, err := env.Auth.Login(ctx, auth.LoginForm{Email: "nobody@example.com", Password: "wrong1"})
	apiErr, ok := api.AsError(err)
	require.True(t, ok)
	assert.Equal(t, api.KindBusiness, apiErr.Kind)
	assert.Equal(t, "invalid email or password", apiErr.Message)
	assert.Empty(t, events, "a failed login never publishes session events")
}

// TestFetchLoaderAgainstBackend drives the hook layer end to end.
func TestFetchLoaderAgainstBackend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// unauthenticated: the balance loader settles empty without a call
	balance := fetch.Balance(env.API, env.Session)
	defer balance.Close()
	state := balance.Load(ctx)
	assert.Nil(t, state.Data)
	assert.Empty(t, state.Err)

	// public data loads regardless
	games := fetch.Games(env.API, env.Session, api.GameFilters{Limit: 5})
	defer games.Close()
	gamesState := games.Load(ctx)
	require.Empty(t, gamesState.Err)
	require.NotNil(t, gamesState.Data)
	assert.Len(t, gamesState.Data.Data, 5)

	_, err := env.Auth.Register(ctx, auth.RegisterForm{
		Email:           testEmail,
		Nickname:        "player1",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		AgreeTerms:      true,
	})
	require.NoError(t, err)

	state = balance.Refetch(ctx)
	require.Empty(t, state.Err)
	require.NotNil(t, state.Data)
	assert.Equal(t, 100.0, state.Data.Total())
}

// TestProfileUpdateFlow covers profile edit and password change.
func TestProfileUpdateFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Auth.Register(ctx, auth.RegisterForm{
		Email:           testEmail,
		Nickname:        "player1",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		AgreeTerms:      true,
	})
	require.NoError(t, err)

	updated, err := env.API.UpdateProfile(ctx, api.ProfileUpdate{Nickname: "highroller"})
	require.NoError(t, err)
	assert.Equal(t, "highroller", updated.Nickname)

	require.NoError(t, env.API.ChangePassword(ctx, testPassword, "evenmoresecret"))
	env.Auth.Logout(ctx)

	_, err = env.Auth.Login(ctx, auth.LoginForm{Email: testEmail, Password: testPassword})
	require.Error(t, err, "the old password no longer works")

	_, err = env.Auth.Login(ctx, auth.LoginForm{Email: testEmail, Password: "evenmoresecret"})
	require.NoError(t, err)
}

// TestSupportTickets covers the support endpoints end to end.
func TestSupportTickets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.Auth.QuickRegister(ctx, true)
	require.NoError(t, err)

	ticket, err := env.API.CreateSupportTicket(ctx, "deposit stuck", "my deposit is not credited", "payments")
	require.NoError(t, err)
	assert.Equal(t, "open", ticket.Status)

	withReply, err := env.API.AddTicketMessage(ctx, ticket.ID, "still nothing")
	require.NoError(t, err)
	assert.Len(t, withReply.Messages, 2)

	tickets, err := env.API.SupportTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
}
