package models

// Movie is the canonical movie entity. The id is the sole join key across
// reviews, recommendations and watchlist membership; AverageRating,
// ReviewCount and IsInWatchlist are denormalized copies reconciled by the
// state propagator after every mutation.
type Movie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ReleaseYear   int      `json:"releaseYear"`
	Genres        []string `json:"genres"`
	Description   string   `json:"description"`
	Director      string   `json:"director"`
	Actors        []string `json:"actors"`
	PosterURL     string   `json:"posterUrl"`
	AverageRating *float64 `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
	IsInWatchlist bool     `json:"isInWatchlist"`
}
