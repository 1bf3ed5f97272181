package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"moviedeck/internal/models"
)

// RecommendationClient wraps the recommendation service. All four strategy
// endpoints require authentication.
type RecommendationClient struct {
	core *core
}

func NewRecommendationClient(config Config) *RecommendationClient {
	return &RecommendationClient{core: newCore(config)}
}

func (c *RecommendationClient) Recommendations(ctx context.Context, userID string, strategy models.Strategy) ([]models.Movie, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}

	suffix, err := strategySuffix(strategy)
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	if err := c.core.get(ctx, "/recommendations/users/"+url.PathEscape(userID)+suffix, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func strategySuffix(strategy models.Strategy) (string, error) {
	switch strategy {
	case models.StrategyPersonalized:
		return "", nil
	case models.StrategyByGenre:
		return "/genre", nil
	case models.StrategyByRating:
		return "/rating", nil
	case models.StrategySimilarUsers:
		return "/similar-users", nil
	default:
		return "", fmt.Errorf("unknown recommendation strategy %q", strategy)
	}
}
