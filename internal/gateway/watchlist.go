package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"moviedeck/internal/models"
)

// WatchlistClient wraps the watchlist endpoints. The server returns full
// movie payloads; membership is derived from their ids.
type WatchlistClient struct {
	core *core
}

func NewWatchlistClient(config Config) *WatchlistClient {
	return &WatchlistClient{core: newCore(config)}
}

func (c *WatchlistClient) Watchlist(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.core.get(ctx, "/watchlist", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *WatchlistClient) Add(ctx context.Context, movieID string) error {
	if strings.TrimSpace(movieID) == "" {
		return fmt.Errorf("movie id cannot be empty")
	}
	return c.core.post(ctx, "/watchlist/"+url.PathEscape(movieID), nil, nil)
}

func (c *WatchlistClient) Remove(ctx context.Context, movieID string) error {
	if strings.TrimSpace(movieID) == "" {
		return fmt.Errorf("movie id cannot be empty")
	}
	return c.core.delete(ctx, "/watchlist/"+url.PathEscape(movieID), nil)
}
