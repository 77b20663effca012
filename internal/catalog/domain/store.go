package domain

import "time"

// Location is a GeoJSON point plus the human-readable address of a store.
// Coordinates are always ordered [longitude, latitude].
type Location struct {
	Type        string
	Coordinates []float64
	Address     string
}

// Store represents a place of business in the directory.
type Store struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Tags        []string
	Location    Location
	Photo       string
	AuthorID    string
	CreatedAt   time.Time
}

// ScoredStore pairs a store with the text-index relevance score it matched
// a search query with.
type ScoredStore struct {
	Store Store
	Score float64
}

// RatedStore pairs a store with the arithmetic mean of its review ratings.
type RatedStore struct {
	Store         Store
	AverageRating float64
	ReviewCount   int
}

// TagCount is one facet row: a distinct tag value and how many times it
// occurs across all stores. A store listing the same tag twice counts twice.
type TagCount struct {
	Tag   string
	Count int
}
