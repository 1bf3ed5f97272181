// Package state is the in-memory store shared by every view of the client:
// entity slices for movies, reviews, watchlist membership and
// recommendations, a per-operation lifecycle tracker, and the dispatcher
// that turns intents into gateway calls. Any number of requests may be in
// flight at once; state changes only at discrete commit points under the
// store lock, and commit order follows issue order via sequence numbers.
package state

import (
	"sync"

	"moviedeck/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EpochSource reports the current session epoch. Results of identity-scoped
// requests issued under an older epoch are discarded at commit time.
type EpochSource interface {
	Epoch() uint64
}

// Ticket identifies one issued request: its operation key, the sequence
// number stamped at issue time, the session epoch it was issued under, and
// a correlation id for logging.
type Ticket struct {
	Key       OpKey
	Seq       uint64
	Epoch     uint64
	Scoped    bool
	RequestID string
}

type Config struct {
	Logger *logrus.Logger
	Epochs EpochSource
}

type Store struct {
	logger *logrus.Logger
	epochs EpochSource

	mu              sync.Mutex
	clock           *Clock
	tracker         *tracker
	prop            propagator
	movies          *movieSlice
	reviews         *reviewSlice
	watchlist       *watchlistSlice
	recommendations *recommendationSlice
	subscribers     []func()
}

func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &Store{
		logger:          config.Logger,
		epochs:          config.Epochs,
		clock:           NewClock(),
		tracker:         newTracker(),
		movies:          newMovieSlice(),
		reviews:         newReviewSlice(),
		watchlist:       newWatchlistSlice(),
		recommendations: newRecommendationSlice(),
	}
}

// Subscribe registers a callback invoked after every committed change.
// Callbacks run outside the store lock and may read snapshots freely.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Begin stamps a new request for the given operation and marks it pending.
// It never cancels an earlier in-flight request for the same key; the loser
// is discarded at commit time instead.
func (s *Store) Begin(kind Kind, key string, scoped bool) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := Ticket{
		Key:       OpKey{Kind: kind, Key: key},
		Seq:       s.clock.Next(),
		Scoped:    scoped,
		RequestID: uuid.NewString(),
	}
	if scoped && s.epochs != nil {
		ticket.Epoch = s.epochs.Epoch()
	}
	s.tracker.begin(ticket.Key)
	return ticket
}

// Commit applies a resolved request's mutation. It returns false without
// touching state when the result is superseded: a higher sequence number
// already committed for the key, or the session epoch moved on.
func (s *Store) Commit(ticket Ticket, apply func(*Store)) bool {
	s.mu.Lock()
	if s.superseded(ticket) {
		s.mu.Unlock()
		s.logDiscard(ticket)
		return false
	}
	apply(s)
	s.tracker.succeed(ticket.Key, ticket.Seq)
	subscribers := append([]func(){}, s.subscribers...)
	s.mu.Unlock()

	s.notify(subscribers)
	return true
}

// Fail records a failure on the lifecycle tracker. Prior slice state is
// left untouched: a failed fetch never clears existing data. Superseded
// failures are discarded like superseded successes.
func (s *Store) Fail(ticket Ticket, err error) bool {
	s.mu.Lock()
	if s.superseded(ticket) {
		s.mu.Unlock()
		s.logDiscard(ticket)
		return false
	}
	s.tracker.fail(ticket.Key, ticket.Seq, err)
	subscribers := append([]func(){}, s.subscribers...)
	s.mu.Unlock()

	s.notify(subscribers)
	return true
}

func (s *Store) superseded(ticket Ticket) bool {
	if ticket.Scoped && s.epochs != nil && ticket.Epoch != s.epochs.Epoch() {
		return true
	}
	return ticket.Seq <= s.tracker.committed(ticket.Key)
}

func (s *Store) logDiscard(ticket Ticket) {
	s.logger.WithFields(logrus.Fields{
		"kind":       ticket.Key.Kind,
		"key":        ticket.Key.Key,
		"seq":        ticket.Seq,
		"latest_seq": s.clock.Current(),
		"request_id": ticket.RequestID,
	}).Debug("Discarding superseded result")
}

func (s *Store) notify(subscribers []func()) {
	for _, fn := range subscribers {
		fn()
	}
}

// Reset evicts all entity slices. Called on session teardown; lifecycle
// entries survive so the most recent error stays visible.
func (s *Store) Reset() {
	s.mu.Lock()
	s.movies = newMovieSlice()
	s.reviews = newReviewSlice()
	s.watchlist = newWatchlistSlice()
	s.recommendations = newRecommendationSlice()
	subscribers := append([]func(){}, s.subscribers...)
	s.mu.Unlock()

	s.notify(subscribers)
}

// Reads below are synchronous snapshots.

func (s *Store) Movies() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movies.all()
}

func (s *Store) Movie(id string) (models.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movies.get(id)
}

func (s *Store) CurrentMovie() (models.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.movies.currentID == "" {
		return models.Movie{}, false
	}
	return s.movies.get(s.movies.currentID)
}

func (s *Store) Reviews(movieID string) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviews.forMovie(movieID)
}

func (s *Store) WatchlistIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchlist.ids()
}

func (s *Store) InWatchlist(movieID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchlist.contains(movieID)
}

func (s *Store) Recommendations(strategy models.Strategy) []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommendations.get(strategy)
}

func (s *Store) Status(kind Kind, key string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.status(OpKey{Kind: kind, Key: key})
}

func (s *Store) LastError(kind Kind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.lastError(OpKey{Kind: kind, Key: key})
}
