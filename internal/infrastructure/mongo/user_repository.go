package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/application"
	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// UserRepository implements application.UserRepository using MongoDB. Only
// the hearts set is writable from the catalog; the rest of the user
// document belongs to the auth subsystem.
type UserRepository struct {
	users *mongo.Collection
}

var _ application.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a Mongo-backed user repository.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{users: db.Collection(collectionName)}
}

// FindByID returns a single user by its identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", id, domain.ErrValidation)
	}
	var doc UserDocument
	if err := r.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

// ToggleHeart removes the store from the user's hearts when present,
// otherwise adds it, and returns the updated user. $addToSet keeps the set
// duplicate-free even when two toggles race.
func (r *UserRepository) ToggleHeart(ctx context.Context, userID, storeID string) (*domain.User, error) {
	userObjID, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("user id %q: %w", userID, domain.ErrValidation)
	}
	storeObjID, err := primitive.ObjectIDFromHex(strings.TrimSpace(storeID))
	if err != nil {
		return nil, fmt.Errorf("store id %q: %w", storeID, domain.ErrValidation)
	}

	current, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	operator := "$addToSet"
	for _, heart := range current.Hearts {
		if heart == storeID {
			operator = "$pull"
			break
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated UserDocument
	err = r.users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userObjID},
		bson.M{operator: bson.M{"hearts": storeObjID}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, err
	}

	user := mapUserDocument(updated)
	return &user, nil
}
