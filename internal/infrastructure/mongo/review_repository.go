package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/application"
	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// ReviewRepository implements application.ReviewRepository using MongoDB.
type ReviewRepository struct {
	reviews *mongo.Collection
}

var _ application.ReviewRepository = (*ReviewRepository)(nil)

// NewReviewRepository creates a Mongo-backed review repository.
func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{reviews: db.Collection(collectionName)}
}

// Insert persists a new review and writes the assigned id back.
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	storeID, err := primitive.ObjectIDFromHex(strings.TrimSpace(review.StoreID))
	if err != nil {
		return fmt.Errorf("store id %q: %w", review.StoreID, domain.ErrValidation)
	}
	authorID, err := primitive.ObjectIDFromHex(strings.TrimSpace(review.AuthorID))
	if err != nil {
		return fmt.Errorf("author id %q: %w", review.AuthorID, domain.ErrValidation)
	}

	doc := ReviewDocument{
		ID:      primitive.NewObjectID(),
		Store:   storeID,
		Author:  authorID,
		Text:    review.Text,
		Rating:  review.Rating,
		Created: review.CreatedAt,
	}
	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return err
	}
	review.ID = doc.ID.Hex()
	return nil
}

// FindByStore returns all reviews referencing the store, newest first.
// This is the query-time side of the derived store/reviews relationship.
func (r *ReviewRepository) FindByStore(ctx context.Context, storeID string) ([]domain.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(storeID))
	if err != nil {
		return nil, fmt.Errorf("store id %q: %w", storeID, domain.ErrValidation)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.reviews.Find(ctx, bson.M{"store": objectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	return reviews, cursor.Err()
}
