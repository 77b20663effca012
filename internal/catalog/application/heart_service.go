package application

import (
	"context"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

type heartService struct {
	users  UserRepository
	stores StoreRepository
}

// NewHeartService creates the favourites service.
func NewHeartService(users UserRepository, stores StoreRepository) HeartService {
	return &heartService{users: users, stores: stores}
}

// Toggle adds the store to the user's hearts, or removes it when already
// present, and returns the updated user.
func (s *heartService) Toggle(ctx context.Context, userID, storeID string) (*domain.User, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	return s.users.ToggleHeart(ctx, userID, storeID)
}

// ListHearted returns the stores the user has hearted.
func (s *heartService) ListHearted(ctx context.Context, userID string) ([]domain.Store, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Hearts) == 0 {
		return []domain.Store{}, nil
	}
	return s.stores.FindByIDs(ctx, user.Hearts)
}
