package application

import (
	"context"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// StoreRepository abstracts store persistence. Implementations map storage
// errors onto the domain sentinels (ErrNotFound, ErrSlugTaken).
type StoreRepository interface {
	Insert(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Store, error)
	// FindSlugs returns every live slug matching the case-insensitive
	// pattern, excluding the record with excludeID when non-empty.
	FindSlugs(ctx context.Context, pattern, excludeID string) ([]string, error)
	FindPage(ctx context.Context, skip, limit int) ([]domain.Store, error)
	Count(ctx context.Context) (int, error)
	FindNear(ctx context.Context, lng, lat, maxDistanceMeters float64, limit int) ([]domain.Store, error)
	Search(ctx context.Context, query string, limit int) ([]domain.ScoredStore, error)
	// FindByTag returns stores carrying the tag; an empty tag means every
	// store that has at least one tag.
	FindByTag(ctx context.Context, tag string) ([]domain.Store, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error)
	TagCounts(ctx context.Context) ([]domain.TagCount, error)
	TopRated(ctx context.Context, minReviews, limit int) ([]domain.RatedStore, error)
}

// ReviewRepository abstracts review persistence.
type ReviewRepository interface {
	Insert(ctx context.Context, review *domain.Review) error
	FindByStore(ctx context.Context, storeID string) ([]domain.Review, error)
}

// UserRepository gives the catalog its narrow view of users: the hearts set.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ToggleHeart(ctx context.Context, userID, storeID string) (*domain.User, error)
}

// UpsertStoreCommand captures the writable store fields for create/update.
// AuthorID comes from the authenticated identity, never the request body.
type UpsertStoreCommand struct {
	Name        string
	Description string
	Tags        []string
	Longitude   float64
	Latitude    float64
	Address     string
	Photo       string
	AuthorID    string
}

// AddReviewCommand captures a review submission.
type AddReviewCommand struct {
	StoreID  string
	AuthorID string
	Text     string
	Rating   int
}

// StoreService handles store writes and single-store reads.
type StoreService interface {
	Create(ctx context.Context, cmd UpsertStoreCommand) (*domain.Store, error)
	Update(ctx context.Context, id string, cmd UpsertStoreCommand) (*domain.Store, error)
	BySlug(ctx context.Context, slug string) (*domain.Store, []domain.Review, error)
}

// DiscoveryService answers the catalog's query surface: proximity, text
// relevance, tag facets, top rated and the paged listing.
type DiscoveryService interface {
	FindNear(ctx context.Context, lng, lat, maxDistanceMeters float64, limit int) ([]domain.Store, error)
	Search(ctx context.Context, query string, limit int) ([]domain.ScoredStore, error)
	TagCounts(ctx context.Context) ([]domain.TagCount, error)
	StoresByTag(ctx context.Context, tag string) ([]domain.Store, error)
	TopRated(ctx context.Context, minReviews, limit int) ([]domain.RatedStore, error)
	ListPage(ctx context.Context, req domain.PageRequest) ([]domain.Store, domain.PageInfo, error)
}

// ReviewService handles review submission.
type ReviewService interface {
	Add(ctx context.Context, cmd AddReviewCommand) (*domain.Review, error)
}

// HeartService toggles and lists a user's favourite stores.
type HeartService interface {
	Toggle(ctx context.Context, userID, storeID string) (*domain.User, error)
	ListHearted(ctx context.Context, userID string) ([]domain.Store, error)
}
