package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"moviedeck/internal/apierrors"
	"moviedeck/internal/models"
)

const (
	minRating = 1
	maxRating = 5
)

// ReviewClient wraps the review service.
type ReviewClient struct {
	core *core
}

func NewReviewClient(config Config) *ReviewClient {
	return &ReviewClient{core: newCore(config)}
}

func (c *ReviewClient) MovieReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	if strings.TrimSpace(movieID) == "" {
		return nil, fmt.Errorf("movie id cannot be empty")
	}

	var reviews []models.Review
	if err := c.core.get(ctx, "/reviews/movie/"+url.PathEscape(movieID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SubmitReview always creates a new review server-side; the caller is
// responsible for preventing accidental double-submit.
func (c *ReviewClient) SubmitReview(ctx context.Context, req models.ReviewRequest) (*models.Review, error) {
	if strings.TrimSpace(req.MovieID) == "" {
		return nil, fmt.Errorf("movie id cannot be empty")
	}
	if req.Rating < minRating || req.Rating > maxRating {
		return nil, &apierrors.ValidationError{
			Message: "rating out of range",
			Fields:  map[string]string{"rating": fmt.Sprintf("must be between %d and %d", minRating, maxRating)},
		}
	}

	var review models.Review
	if err := c.core.post(ctx, "/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *ReviewClient) AverageRating(ctx context.Context, movieID string) (*models.AverageRating, error) {
	if strings.TrimSpace(movieID) == "" {
		return nil, fmt.Errorf("movie id cannot be empty")
	}

	var avg models.AverageRating
	if err := c.core.get(ctx, "/reviews/movie/"+url.PathEscape(movieID)+"/average-rating", nil, &avg); err != nil {
		return nil, err
	}
	return &avg, nil
}
