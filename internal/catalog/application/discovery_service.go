package application

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// Query defaults. Distances are meters.
const (
	DefaultMaxDistance  = 10000.0
	DefaultNearLimit    = 10
	DefaultSearchLimit  = 5
	DefaultMinReviews   = 2
	DefaultTopStoreRows = 10
)

type discoveryService struct {
	stores StoreRepository
}

// NewDiscoveryService creates the catalog query service.
func NewDiscoveryService(stores StoreRepository) DiscoveryService {
	return &discoveryService{stores: stores}
}

// FindNear returns stores within maxDistanceMeters of the point, nearest
// first. No matches is an empty list, not an error.
func (s *discoveryService) FindNear(ctx context.Context, lng, lat, maxDistanceMeters float64, limit int) ([]domain.Store, error) {
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return nil, fmt.Errorf("coordinates must be finite numbers: %w", domain.ErrValidation)
	}
	if maxDistanceMeters <= 0 {
		maxDistanceMeters = DefaultMaxDistance
	}
	if limit <= 0 {
		limit = DefaultNearLimit
	}
	return s.stores.FindNear(ctx, lng, lat, maxDistanceMeters, limit)
}

// Search returns stores matching the query under the text index, ranked by
// relevance score descending. Tie order between equal scores is whatever
// the index returns.
func (s *discoveryService) Search(ctx context.Context, query string, limit int) ([]domain.ScoredStore, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty: %w", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return s.stores.Search(ctx, query, limit)
}

// TagCounts lists distinct tag values with per-occurrence counts, ordered
// by count descending.
func (s *discoveryService) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	return s.stores.TagCounts(ctx)
}

// StoresByTag lists stores carrying the tag; with an empty tag, every store
// that has at least one tag.
func (s *discoveryService) StoresByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	return s.stores.FindByTag(ctx, strings.TrimSpace(tag))
}

// TopRated ranks stores with at least minReviews reviews by mean rating
// descending. Stores with zero reviews never reach the average step.
func (s *discoveryService) TopRated(ctx context.Context, minReviews, limit int) ([]domain.RatedStore, error) {
	if minReviews < 1 {
		minReviews = DefaultMinReviews
	}
	if limit <= 0 {
		limit = DefaultTopStoreRows
	}
	return s.stores.TopRated(ctx, minReviews, limit)
}

// ListPage returns one window of the store listing (newest first) together
// with the resolved page info, including a redirect target when the
// requested page is past the end.
func (s *discoveryService) ListPage(ctx context.Context, req domain.PageRequest) ([]domain.Store, domain.PageInfo, error) {
	total, err := s.stores.Count(ctx)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}
	stores, err := s.stores.FindPage(ctx, req.Skip(), req.Size)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}
	return stores, domain.NewPageInfo(req, total, len(stores)), nil
}
