package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"moviedeck/internal/apierrors"
	"moviedeck/internal/gateway"
	"moviedeck/internal/models"

	"github.com/sirupsen/logrus"
)

// The detail view holds one movie at a time, so every fetchMovie request
// competes for the same key regardless of which movie id it carries.
const currentMovieKey = "currentMovie"

// SessionControl is the slice of the session store the dispatcher needs:
// the current identity for user-scoped endpoints, the epoch for discarding
// results that outlive their session, and teardown on auth rejection.
type SessionControl interface {
	EpochSource
	CurrentUser() (models.User, bool)
	Invalidate(ctx context.Context)
}

type DispatcherConfig struct {
	Store           *Store
	Session         SessionControl
	Catalog         *gateway.CatalogClient
	Reviews         *gateway.ReviewClient
	Recommendations *gateway.RecommendationClient
	Watchlist       *gateway.WatchlistClient
	Logger          *logrus.Logger
}

// Dispatcher is the single entry point for intents. Dispatch blocks until
// the operation's result is committed, discarded or failed; callers run it
// in a goroutine when they want fire-and-forget behavior, and any number of
// dispatches may run concurrently.
type Dispatcher struct {
	store           *Store
	session         SessionControl
	catalog         *gateway.CatalogClient
	reviews         *gateway.ReviewClient
	recommendations *gateway.RecommendationClient
	watchlist       *gateway.WatchlistClient
	logger          *logrus.Logger
}

func NewDispatcher(config DispatcherConfig) *Dispatcher {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &Dispatcher{
		store:           config.Store,
		session:         config.Session,
		catalog:         config.Catalog,
		reviews:         config.Reviews,
		recommendations: config.Recommendations,
		watchlist:       config.Watchlist,
		logger:          config.Logger,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent) error {
	switch it := intent.(type) {
	case FetchCatalog:
		return d.fetchCatalog(ctx, it)
	case SearchMovies:
		return d.searchMovies(ctx, it)
	case FetchMovie:
		return d.fetchMovie(ctx, it)
	case FetchReviews:
		return d.fetchReviews(ctx, it)
	case SubmitReview:
		return d.submitReview(ctx, it)
	case FetchAverageRating:
		return d.fetchAverageRating(ctx, it)
	case FetchRecommendations:
		return d.fetchRecommendations(ctx, it)
	case FetchAllRecommendations:
		return d.fetchAllRecommendations(ctx)
	case FetchWatchlist:
		return d.fetchWatchlist(ctx)
	case AddToWatchlist:
		return d.toggleWatchlist(ctx, it.MovieID, true)
	case RemoveFromWatchlist:
		return d.toggleWatchlist(ctx, it.MovieID, false)
	default:
		return fmt.Errorf("unhandled intent type %T", intent)
	}
}

func (d *Dispatcher) fetchCatalog(ctx context.Context, it FetchCatalog) error {
	ticket := d.store.Begin(KindFetchCatalog, "", false)
	movies, err := d.catalog.ListMovies(ctx, it.Filter)
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		s.movies.replaceAll(movies)
		s.prop.syncWatchlistFlags(s.movies, s.watchlist)
		s.prop.syncReviewAggregates(s.movies, s.reviews)
	})
	return nil
}

func (d *Dispatcher) searchMovies(ctx context.Context, it SearchMovies) error {
	ticket := d.store.Begin(KindSearchMovies, "", false)
	movies, err := d.catalog.SearchMovies(ctx, it.Filter)
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		s.movies.replaceAll(movies)
		s.prop.syncWatchlistFlags(s.movies, s.watchlist)
		s.prop.syncReviewAggregates(s.movies, s.reviews)
	})
	return nil
}

func (d *Dispatcher) fetchMovie(ctx context.Context, it FetchMovie) error {
	ticket := d.store.Begin(KindFetchMovie, currentMovieKey, false)
	movie, err := d.catalog.GetMovie(ctx, it.MovieID)
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		s.movies.upsert(*movie)
		s.movies.currentID = movie.ID
		if s.watchlist.loaded {
			s.prop.afterWatchlistChange(s.movies, s.watchlist, movie.ID)
		}
		if s.reviews.hasLoaded(movie.ID) {
			s.prop.afterReviewChange(s.movies, s.reviews, movie.ID)
		}
	})
	return nil
}

func (d *Dispatcher) fetchReviews(ctx context.Context, it FetchReviews) error {
	ticket := d.store.Begin(KindFetchReviews, it.MovieID, false)
	reviews, err := d.reviews.MovieReviews(ctx, it.MovieID)
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		s.reviews.replaceForMovie(it.MovieID, reviews)
		s.prop.afterReviewChange(s.movies, s.reviews, it.MovieID)
	})
	return nil
}

func (d *Dispatcher) submitReview(ctx context.Context, it SubmitReview) error {
	ticket := d.store.Begin(KindSubmitReview, it.MovieID, true)
	review, err := d.reviews.SubmitReview(ctx, models.ReviewRequest{
		MovieID: it.MovieID,
		Rating:  it.Rating,
		Comment: it.Comment,
	})
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		s.reviews.add(*review)
		s.prop.afterReviewChange(s.movies, s.reviews, review.MovieID)
	})
	return nil
}

func (d *Dispatcher) fetchAverageRating(ctx context.Context, it FetchAverageRating) error {
	ticket := d.store.Begin(KindFetchAverageRating, it.MovieID, false)
	avg, err := d.reviews.AverageRating(ctx, it.MovieID)
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		// Locally held reviews win over the server aggregate; the server
		// value only fills the gap before the first reviews fetch.
		if s.reviews.hasLoaded(it.MovieID) {
			s.prop.afterReviewChange(s.movies, s.reviews, it.MovieID)
			return
		}
		rating := avg.AverageRating
		count := avg.ReviewCount
		s.movies.patch(it.MovieID, MoviePatch{AverageRating: &rating, ReviewCount: &count})
	})
	return nil
}

func (d *Dispatcher) fetchRecommendations(ctx context.Context, it FetchRecommendations) error {
	ticket := d.store.Begin(KindFetchRecommendations, string(it.Strategy), true)
	user, ok := d.session.CurrentUser()
	if !ok {
		err := &apierrors.AuthError{Message: "no authenticated user"}
		d.store.Fail(ticket, err)
		return err
	}
	movies, err := d.recommendations.Recommendations(ctx, user.ID, it.Strategy)
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		s.recommendations.replace(it.Strategy, movies)
	})
	return nil
}

// fetchAllRecommendations fans the four strategy fetches out in parallel,
// the way the recommendations view loads.
func (d *Dispatcher) fetchAllRecommendations(ctx context.Context) error {
	strategies := models.Strategies()
	errs := make([]error, len(strategies))

	var wg sync.WaitGroup
	for i, strategy := range strategies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = d.fetchRecommendations(ctx, FetchRecommendations{Strategy: strategy})
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (d *Dispatcher) fetchWatchlist(ctx context.Context) error {
	ticket := d.store.Begin(KindFetchWatchlist, "", true)
	movies, err := d.watchlist.Watchlist(ctx)
	if err != nil {
		return d.fail(ctx, ticket, err)
	}
	d.store.Commit(ticket, func(s *Store) {
		ids := make([]string, len(movies))
		for i, m := range movies {
			ids[i] = m.ID
			s.movies.upsert(m)
		}
		s.watchlist.replaceAll(ids)
		s.prop.syncWatchlistFlags(s.movies, s.watchlist)
		s.prop.syncReviewAggregates(s.movies, s.reviews)
	})
	return nil
}

// toggleWatchlist covers both add and remove under one operation key per
// movie id, so an add and a remove for the same movie commit in issue order.
func (d *Dispatcher) toggleWatchlist(ctx context.Context, movieID string, add bool) error {
	ticket := d.store.Begin(KindToggleWatchlist, movieID, true)

	var err error
	if add {
		err = d.watchlist.Add(ctx, movieID)
	} else {
		err = d.watchlist.Remove(ctx, movieID)
	}
	if err != nil {
		return d.fail(ctx, ticket, err)
	}

	d.store.Commit(ticket, func(s *Store) {
		if add {
			s.watchlist.add(movieID)
		} else {
			s.watchlist.remove(movieID)
		}
		s.prop.afterWatchlistChange(s.movies, s.watchlist, movieID)
	})
	return nil
}

// fail records the error for the operation and, when the backend rejected
// our credentials, tears the session down. The failure is recorded before
// the teardown so the triggering error stays visible.
func (d *Dispatcher) fail(ctx context.Context, ticket Ticket, err error) error {
	d.store.Fail(ticket, err)

	d.logger.WithFields(logrus.Fields{
		"kind":       ticket.Key.Kind,
		"key":        ticket.Key.Key,
		"request_id": ticket.RequestID,
		"error":      err.Error(),
	}).Warn("Operation failed")

	if apierrors.IsAuth(err) {
		d.logger.Warn("Authentication rejected, clearing session")
		d.session.Invalidate(ctx)
	}
	return err
}
