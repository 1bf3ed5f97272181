package state

// propagator reconciles the denormalized fields cached on movie entities
// with the slices that own the underlying facts. It runs synchronously
// inside the same locked commit as the slice mutation that triggered it and
// never issues network requests.
type propagator struct{}

// afterReviewChange recomputes a movie's review count and average rating
// from the full review list for that movie: count is the list length and
// the rating is the unweighted mean.
func (propagator) afterReviewChange(movies *movieSlice, reviews *reviewSlice, movieID string) {
	list := reviews.byMovie[movieID]
	count := len(list)
	patch := MoviePatch{ReviewCount: &count}
	if count > 0 {
		var sum int
		for _, review := range list {
			sum += review.Rating
		}
		mean := float64(sum) / float64(count)
		patch.AverageRating = &mean
	}
	movies.patch(movieID, patch)
}

// afterWatchlistChange aligns one movie's watchlist flag with membership.
func (propagator) afterWatchlistChange(movies *movieSlice, watchlist *watchlistSlice, movieID string) {
	in := watchlist.contains(movieID)
	movies.patch(movieID, MoviePatch{InWatchlist: &in})
}

// syncReviewAggregates recomputes review count and average rating for every
// resident movie whose reviews have been fetched. Bulk replaces overwrite
// denormalized fields with server payloads; this restores the locally
// computed values, which win once the reviews are resident.
func (p propagator) syncReviewAggregates(movies *movieSlice, reviews *reviewSlice) {
	for id := range movies.byID {
		if reviews.hasLoaded(id) {
			p.afterReviewChange(movies, reviews, id)
		}
	}
}

// syncWatchlistFlags re-marks every resident movie after a bulk replace.
// Skipped while the watchlist has never been fetched, so server-provided
// flags survive until local membership is known.
func (propagator) syncWatchlistFlags(movies *movieSlice, watchlist *watchlistSlice) {
	if !watchlist.loaded {
		return
	}
	for _, m := range movies.byID {
		m.IsInWatchlist = watchlist.contains(m.ID)
	}
}
