package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// slugInsertAttempts bounds the retry loop that backs the unique slug
// index: two concurrent creations can still derive the same slug, the
// insert then fails on the index and is retried with a fresh scan.
const slugInsertAttempts = 3

type storeService struct {
	stores  StoreRepository
	reviews ReviewRepository
	now     func() time.Time
}

// NewStoreService creates the store write/read service.
func NewStoreService(stores StoreRepository, reviews ReviewRepository) StoreService {
	return &storeService{stores: stores, reviews: reviews, now: time.Now}
}

// Create sanitizes the name, assigns a unique slug and persists the store.
func (s *storeService) Create(ctx context.Context, cmd UpsertStoreCommand) (*domain.Store, error) {
	if err := validateStoreCommand(cmd, true); err != nil {
		return nil, err
	}

	store := &domain.Store{
		Name:        domain.SanitizeName(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Tags:        append([]string{}, cmd.Tags...),
		Location: domain.Location{
			Type:        "Point",
			Coordinates: []float64{cmd.Longitude, cmd.Latitude},
			Address:     strings.TrimSpace(cmd.Address),
		},
		Photo:     strings.TrimSpace(cmd.Photo),
		AuthorID:  cmd.AuthorID,
		CreatedAt: s.now().UTC(),
	}

	for attempt := 0; attempt < slugInsertAttempts; attempt++ {
		slug, err := s.assignSlug(ctx, store.Name, "")
		if err != nil {
			return nil, err
		}
		store.Slug = slug

		err = s.stores.Insert(ctx, store)
		if err == nil {
			return store, nil
		}
		if !errors.Is(err, domain.ErrSlugTaken) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("create store %q: %w", store.Name, domain.ErrSlugTaken)
}

// Update applies the command to an existing store after an ownership check.
// The slug is recomputed only when the sanitized name actually changed, so
// unrelated updates never drift the slug or scan for collisions.
func (s *storeService) Update(ctx context.Context, id string, cmd UpsertStoreCommand) (*domain.Store, error) {
	if err := validateStoreCommand(cmd, false); err != nil {
		return nil, err
	}

	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.AuthorID != cmd.AuthorID {
		return nil, fmt.Errorf("update store %s: %w", id, domain.ErrNotOwner)
	}

	name := domain.SanitizeName(cmd.Name)
	if name != store.Name {
		slug, err := s.assignSlug(ctx, name, store.ID)
		if err != nil {
			return nil, err
		}
		store.Name = name
		store.Slug = slug
	}

	store.Description = strings.TrimSpace(cmd.Description)
	store.Tags = append([]string{}, cmd.Tags...)
	store.Location = domain.Location{
		Type:        "Point",
		Coordinates: []float64{cmd.Longitude, cmd.Latitude},
		Address:     strings.TrimSpace(cmd.Address),
	}
	if photo := strings.TrimSpace(cmd.Photo); photo != "" {
		store.Photo = photo
	}

	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// BySlug loads a store and its reviews. The reviews relationship is derived
// by reference at read time, never stored on the store document.
func (s *storeService) BySlug(ctx context.Context, slug string) (*domain.Store, []domain.Review, error) {
	store, err := s.stores.FindBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	reviews, err := s.reviews.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, nil, err
	}
	return store, reviews, nil
}

// assignSlug derives the base slug and resolves collisions against every
// live slug matching base or base-<n>, excluding the store's own record on
// update so a rename never counts against itself.
func (s *storeService) assignSlug(ctx context.Context, name, excludeID string) (string, error) {
	base := domain.MakeSlug(name)
	taken, err := s.stores.FindSlugs(ctx, domain.SlugPattern(base), excludeID)
	if err != nil {
		return "", err
	}
	return domain.NextSlug(base, taken), nil
}

func validateStoreCommand(cmd UpsertStoreCommand, create bool) error {
	if cmd.AuthorID == "" {
		return fmt.Errorf("author is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(cmd.Address) == "" {
		return fmt.Errorf("you must supply an address: %w", domain.ErrValidation)
	}
	if !isFinite(cmd.Longitude) || !isFinite(cmd.Latitude) {
		return fmt.Errorf("you must supply coordinates: %w", domain.ErrValidation)
	}
	if create && strings.TrimSpace(cmd.Name) == "" {
		return fmt.Errorf("please enter a store name: %w", domain.ErrValidation)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
