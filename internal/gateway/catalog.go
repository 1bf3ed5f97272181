package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"moviedeck/internal/models"
)

// MovieFilter mirrors the catalog service's query parameters. Zero values
// are omitted from the encoded query.
type MovieFilter struct {
	Title       string
	Genres      []string
	Director    string
	Actors      []string
	ReleaseYear int
}

func (f MovieFilter) values() url.Values {
	params := url.Values{}
	if f.Title != "" {
		params.Set("title", f.Title)
	}
	if len(f.Genres) > 0 {
		params.Set("genres", strings.Join(f.Genres, ","))
	}
	if f.Director != "" {
		params.Set("director", f.Director)
	}
	if len(f.Actors) > 0 {
		params.Set("actors", strings.Join(f.Actors, ","))
	}
	if f.ReleaseYear > 0 {
		params.Set("releaseYear", strconv.Itoa(f.ReleaseYear))
	}
	return params
}

// CatalogClient wraps the movie catalog service.
type CatalogClient struct {
	core *core
}

func NewCatalogClient(config Config) *CatalogClient {
	return &CatalogClient{core: newCore(config)}
}

func (c *CatalogClient) ListMovies(ctx context.Context, filter MovieFilter) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.core.get(ctx, "/movies", filter.values(), &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *CatalogClient) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("movie id cannot be empty")
	}

	var movie models.Movie
	if err := c.core.get(ctx, "/movies/"+url.PathEscape(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *CatalogClient) SearchMovies(ctx context.Context, filter MovieFilter) ([]models.Movie, error) {
	var movies []models.Movie
	if err := c.core.get(ctx, "/movies/search", filter.values(), &movies); err != nil {
		return nil, err
	}
	return movies, nil
}
