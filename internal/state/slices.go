package state

import "moviedeck/internal/models"

// Slices are plain containers owned by the Store; every method assumes the
// store lock is held. Bulk fetches go through replaceAll, single entities
// through upsert, and the propagator reconciles denormalized fields with
// patch. Reads hand out copies so snapshots never alias live state.

// MoviePatch carries the denormalized fields the propagator may update on a
// movie entity. Nil fields are left untouched.
type MoviePatch struct {
	AverageRating *float64
	ReviewCount   *int
	InWatchlist   *bool
}

type movieSlice struct {
	order     []string
	byID      map[string]*models.Movie
	currentID string
}

func newMovieSlice() *movieSlice {
	return &movieSlice{byID: make(map[string]*models.Movie)}
}

func (s *movieSlice) replaceAll(movies []models.Movie) {
	s.order = make([]string, 0, len(movies))
	s.byID = make(map[string]*models.Movie, len(movies))
	for _, m := range movies {
		if _, ok := s.byID[m.ID]; ok {
			continue
		}
		stored := m
		s.order = append(s.order, m.ID)
		s.byID[m.ID] = &stored
	}
	if _, ok := s.byID[s.currentID]; !ok {
		s.currentID = ""
	}
}

// upsert merges by id: scalar fields are overwritten, collection fields are
// replaced wholesale, never appended. New movies are appended to the order.
func (s *movieSlice) upsert(m models.Movie) {
	if existing, ok := s.byID[m.ID]; ok {
		*existing = m
		return
	}
	stored := m
	s.order = append(s.order, m.ID)
	s.byID[m.ID] = &stored
}

func (s *movieSlice) patch(id string, patch MoviePatch) {
	m, ok := s.byID[id]
	if !ok {
		return
	}
	if patch.AverageRating != nil {
		rating := *patch.AverageRating
		m.AverageRating = &rating
	}
	if patch.ReviewCount != nil {
		m.ReviewCount = *patch.ReviewCount
	}
	if patch.InWatchlist != nil {
		m.IsInWatchlist = *patch.InWatchlist
	}
}

func (s *movieSlice) get(id string) (models.Movie, bool) {
	if m, ok := s.byID[id]; ok {
		return copyMovie(*m), true
	}
	return models.Movie{}, false
}

func (s *movieSlice) all() []models.Movie {
	movies := make([]models.Movie, 0, len(s.order))
	for _, id := range s.order {
		movies = append(movies, copyMovie(*s.byID[id]))
	}
	return movies
}

type reviewSlice struct {
	byMovie map[string][]models.Review
	loaded  map[string]bool
}

func newReviewSlice() *reviewSlice {
	return &reviewSlice{
		byMovie: make(map[string][]models.Review),
		loaded:  make(map[string]bool),
	}
}

func (s *reviewSlice) replaceForMovie(movieID string, reviews []models.Review) {
	list := make([]models.Review, len(reviews))
	copy(list, reviews)
	s.byMovie[movieID] = list
	s.loaded[movieID] = true
}

// add appends a review in arrival order. A review with a known id replaces
// the existing entry instead; reviews are never mutated in place.
func (s *reviewSlice) add(review models.Review) {
	list := s.byMovie[review.MovieID]
	for i, existing := range list {
		if existing.ID == review.ID {
			list[i] = review
			return
		}
	}
	s.byMovie[review.MovieID] = append(list, review)
	s.loaded[review.MovieID] = true
}

func (s *reviewSlice) forMovie(movieID string) []models.Review {
	list := s.byMovie[movieID]
	out := make([]models.Review, len(list))
	copy(out, list)
	return out
}

func (s *reviewSlice) hasLoaded(movieID string) bool {
	return s.loaded[movieID]
}

type watchlistSlice struct {
	order   []string
	members map[string]bool
	loaded  bool
}

func newWatchlistSlice() *watchlistSlice {
	return &watchlistSlice{members: make(map[string]bool)}
}

// replaceAll rebuilds membership from a fetch, preserving server order.
func (s *watchlistSlice) replaceAll(ids []string) {
	s.order = make([]string, 0, len(ids))
	s.members = make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.members[id] {
			continue
		}
		s.order = append(s.order, id)
		s.members[id] = true
	}
	s.loaded = true
}

// add is idempotent: a member id is never duplicated.
func (s *watchlistSlice) add(id string) {
	if s.members[id] {
		return
	}
	s.order = append(s.order, id)
	s.members[id] = true
}

func (s *watchlistSlice) remove(id string) {
	if !s.members[id] {
		return
	}
	delete(s.members, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *watchlistSlice) contains(id string) bool {
	return s.members[id]
}

func (s *watchlistSlice) ids() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

type recommendationSlice struct {
	sets map[models.Strategy][]models.Movie
}

func newRecommendationSlice() *recommendationSlice {
	return &recommendationSlice{sets: make(map[models.Strategy][]models.Movie)}
}

// replace swaps a strategy's set wholesale; there is no incremental merge.
func (s *recommendationSlice) replace(strategy models.Strategy, movies []models.Movie) {
	set := make([]models.Movie, len(movies))
	for i, m := range movies {
		set[i] = copyMovie(m)
	}
	s.sets[strategy] = set
}

func (s *recommendationSlice) get(strategy models.Strategy) []models.Movie {
	set := s.sets[strategy]
	out := make([]models.Movie, len(set))
	for i, m := range set {
		out[i] = copyMovie(m)
	}
	return out
}

func copyMovie(m models.Movie) models.Movie {
	out := m
	if m.Genres != nil {
		out.Genres = append([]string(nil), m.Genres...)
	}
	if m.Actors != nil {
		out.Actors = append([]string(nil), m.Actors...)
	}
	if m.AverageRating != nil {
		rating := *m.AverageRating
		out.AverageRating = &rating
	}
	return out
}
