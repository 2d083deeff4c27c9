package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kazino55/client/internal/model"
)

// GameFilters narrow the catalog listing. Zero values mean "no filter";
// in particular an empty Search returns the full default page.
type GameFilters struct {
	Category string
	Provider string
	Featured *bool
	Search   string
	Page     int
	Limit    int
}

// GamesPage is one page of the catalog.
type GamesPage struct {
	Data       []model.Game     `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

// Games lists the catalog with optional filters and pagination.
func (c *Client) Games(ctx context.Context, filters GameFilters) (*GamesPage, error) {
	query := url.Values{}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.Provider != "" {
		query.Set("provider", filters.Provider)
	}
	if filters.Featured != nil {
		query.Set("featured", strconv.FormatBool(*filters.Featured))
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var page GamesPage
	if err := c.do(ctx, http.MethodGet, "/games", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FeaturedGames lists the curated featured selection.
func (c *Client) FeaturedGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := c.do(ctx, http.MethodGet, "/games/featured", nil, nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// PopularGames lists the most played games.
func (c *Client) PopularGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := c.do(ctx, http.MethodGet, "/games/popular", nil, nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GameCategories lists the catalog categories.
func (c *Client) GameCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/games/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GameDetails fetches a single catalog entry.
func (c *Client) GameDetails(ctx context.Context, gameID string) (*model.Game, error) {
	var game model.Game
	if err := c.do(ctx, http.MethodGet, "/games/"+gameID, nil, nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// LaunchGame obtains a launch URL and session for a game. Mode is "real" or
// "demo"; empty defaults to "real".
func (c *Client) LaunchGame(ctx context.Context, gameID, mode string) (*model.LaunchSession, error) {
	if mode == "" {
		mode = "real"
	}
	var launch model.LaunchSession
	body := map[string]string{"mode": mode}
	if err := c.do(ctx, http.MethodPost, "/games/"+gameID+"/launch", nil, body, &launch); err != nil {
		return nil, err
	}
	return &launch, nil
}
