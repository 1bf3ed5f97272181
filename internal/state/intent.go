package state

import (
	"moviedeck/internal/gateway"
	"moviedeck/internal/models"
)

// Intent is the closed set of operations the dispatcher accepts. Each
// variant maps to exactly one gateway call (FetchAllRecommendations fans
// out to the four strategy fetches). The marker method keeps the set closed
// to this package.
type Intent interface {
	isIntent()
}

type FetchCatalog struct {
	Filter gateway.MovieFilter
}

type SearchMovies struct {
	Filter gateway.MovieFilter
}

type FetchMovie struct {
	MovieID string
}

type FetchReviews struct {
	MovieID string
}

type SubmitReview struct {
	MovieID string
	Rating  int
	Comment *string
}

type FetchAverageRating struct {
	MovieID string
}

type FetchRecommendations struct {
	Strategy models.Strategy
}

type FetchAllRecommendations struct{}

type FetchWatchlist struct{}

type AddToWatchlist struct {
	MovieID string
}

type RemoveFromWatchlist struct {
	MovieID string
}

func (FetchCatalog) isIntent()            {}
func (SearchMovies) isIntent()            {}
func (FetchMovie) isIntent()              {}
func (FetchReviews) isIntent()            {}
func (SubmitReview) isIntent()            {}
func (FetchAverageRating) isIntent()      {}
func (FetchRecommendations) isIntent()    {}
func (FetchAllRecommendations) isIntent() {}
func (FetchWatchlist) isIntent()          {}
func (AddToWatchlist) isIntent()          {}
func (RemoveFromWatchlist) isIntent()     {}
