package domain

import "time"

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating and comment left by a user against a store. Reviews
// are immutable once created; the store relationship is resolved by
// reference at query time, never stored as an array on the store.
type Review struct {
	ID        string
	StoreID   string
	AuthorID  string
	Text      string
	Rating    int
	CreatedAt time.Time
}
