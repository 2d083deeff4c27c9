package fetch

import (
	"context"

	"github.com/kazino55/client/internal/api"
	"github.com/kazino55/client/internal/model"
)

// Typed loaders for the views. Public catalog data needs no session; balance,
// profile and payment history gate on authentication.

// Games lists the catalog with the given filters.
func Games(c *api.Client, auth Authenticator, filters api.GameFilters) *Loader[api.GamesPage] {
	return NewLoader(auth, false, func(ctx context.Context) (*api.GamesPage, error) {
		return c.Games(ctx, filters)
	})
}

// FeaturedGames lists the curated featured selection.
func FeaturedGames(c *api.Client, auth Authenticator) *Loader[[]model.Game] {
	return NewLoader(auth, false, func(ctx context.Context) (*[]model.Game, error) {
		games, err := c.FeaturedGames(ctx)
		if err != nil {
			return nil, err
		}
		return &games, nil
	})
}

// RecentWinners feeds the winners ticker.
func RecentWinners(c *api.Client, auth Authenticator, limit int) *Loader[[]model.Winner] {
	return NewLoader(auth, false, func(ctx context.Context) (*[]model.Winner, error) {
		winners, err := c.RecentWinners(ctx, limit)
		if err != nil {
			return nil, err
		}
		return &winners, nil
	})
}

// Balance fetches the wallet balance; requires authentication.
func Balance(c *api.Client, auth Authenticator) *Loader[model.Balance] {
	return NewLoader(auth, true, func(ctx context.Context) (*model.Balance, error) {
		return c.Balance(ctx)
	})
}

// Profile fetches the player profile; requires authentication.
func Profile(c *api.Client, auth Authenticator) *Loader[model.User] {
	return NewLoader(auth, true, func(ctx context.Context) (*model.User, error) {
		return c.Profile(ctx)
	})
}

// PaymentHistory lists past transactions; requires authentication.
func PaymentHistory(c *api.Client, auth Authenticator, params api.HistoryParams) *Loader[api.HistoryPage] {
	return NewLoader(auth, true, func(ctx context.Context) (*api.HistoryPage, error) {
		return c.PaymentHistory(ctx, params)
	})
}

// Config fetches the public platform configuration.
func Config(c *api.Client, auth Authenticator) *Loader[model.PlatformConfig] {
	return NewLoader(auth, false, func(ctx context.Context) (*model.PlatformConfig, error) {
		return c.PlatformConfig(ctx)
	})
}
