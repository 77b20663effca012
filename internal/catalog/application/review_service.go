package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

type reviewService struct {
	reviews ReviewRepository
	stores  StoreRepository
	now     func() time.Time
}

// NewReviewService creates the review submission service.
func NewReviewService(reviews ReviewRepository, stores StoreRepository) ReviewService {
	return &reviewService{reviews: reviews, stores: stores, now: time.Now}
}

// Add validates and persists a review against an existing store.
func (s *reviewService) Add(ctx context.Context, cmd AddReviewCommand) (*domain.Review, error) {
	if cmd.AuthorID == "" {
		return nil, fmt.Errorf("you must supply an author: %w", domain.ErrValidation)
	}
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return nil, fmt.Errorf("your review must have text: %w", domain.ErrValidation)
	}
	if cmd.Rating < domain.MinRating || cmd.Rating > domain.MaxRating {
		return nil, fmt.Errorf("rating must be between %d and %d: %w", domain.MinRating, domain.MaxRating, domain.ErrValidation)
	}

	// The store reference must resolve before anything is written.
	if _, err := s.stores.FindByID(ctx, cmd.StoreID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		StoreID:   cmd.StoreID,
		AuthorID:  cmd.AuthorID,
		Text:      text,
		Rating:    cmd.Rating,
		CreatedAt: s.now().UTC(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
