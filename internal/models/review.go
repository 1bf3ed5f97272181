package models

import "time"

type Review struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movieId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewRequest is the submit-review payload. Rating is a 1-5 integer.
type ReviewRequest struct {
	MovieID string  `json:"movieId"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

type AverageRating struct {
	MovieID       string  `json:"movieId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
