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

// StoreRepository implements application.StoreRepository using MongoDB.
type StoreRepository struct {
	stores  *mongo.Collection
	reviews string
}

var _ application.StoreRepository = (*StoreRepository)(nil)

// NewStoreRepository creates a Mongo-backed store repository. The review
// collection name is needed for the top-rated $lookup.
func NewStoreRepository(db *mongo.Database, storeCollection, reviewCollection string) *StoreRepository {
	return &StoreRepository{stores: db.Collection(storeCollection), reviews: reviewCollection}
}

// Insert persists a new store and writes the assigned id back. A unique
// index violation on slug is surfaced as domain.ErrSlugTaken so the
// service can re-assign and retry.
func (r *StoreRepository) Insert(ctx context.Context, store *domain.Store) error {
	author, err := primitive.ObjectIDFromHex(strings.TrimSpace(store.AuthorID))
	if err != nil {
		return fmt.Errorf("author id %q: %w", store.AuthorID, domain.ErrValidation)
	}

	doc := buildStoreDocument(store, primitive.NewObjectID(), author)
	if _, err := r.stores.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slug %q: %w", store.Slug, domain.ErrSlugTaken)
		}
		return err
	}
	store.ID = doc.ID.Hex()
	return nil
}

// Update replaces the writable fields of an existing store.
func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(store.ID))
	if err != nil {
		return fmt.Errorf("store id %q: %w", store.ID, domain.ErrValidation)
	}

	update := bson.M{"$set": bson.M{
		"name":        store.Name,
		"slug":        store.Slug,
		"description": store.Description,
		"tags":        store.Tags,
		"location": LocationDocument{
			Type:        store.Location.Type,
			Coordinates: store.Location.Coordinates,
			Address:     store.Location.Address,
		},
		"photo": store.Photo,
	}}
	result, err := r.stores.UpdateByID(ctx, objectID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("slug %q: %w", store.Slug, domain.ErrSlugTaken)
		}
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("store %s: %w", store.ID, domain.ErrNotFound)
	}
	return nil
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("store id %q: %w", id, domain.ErrValidation)
	}
	var doc StoreDocument
	if err := r.stores.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, mapFindError(err, id)
	}
	store := mapStoreDocument(doc)
	return &store, nil
}

// FindBySlug returns a single store by its slug.
func (r *StoreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	var doc StoreDocument
	if err := r.stores.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		return nil, mapFindError(err, slug)
	}
	store := mapStoreDocument(doc)
	return &store, nil
}

// FindSlugs returns every live slug matching the case-insensitive pattern,
// excluding the record with excludeID when set. Used by the slug assigner's
// collision scan.
func (r *StoreRepository) FindSlugs(ctx context.Context, pattern, excludeID string) ([]string, error) {
	filter := bson.M{"slug": primitive.Regex{Pattern: pattern, Options: "i"}}
	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(excludeID))
		if err != nil {
			return nil, fmt.Errorf("store id %q: %w", excludeID, domain.ErrValidation)
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	opts := options.Find().SetProjection(bson.M{"slug": 1})
	cursor, err := r.stores.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	slugs := make([]string, 0)
	for cursor.Next(ctx) {
		var doc struct {
			Slug string `bson:"slug"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		slugs = append(slugs, doc.Slug)
	}
	return slugs, cursor.Err()
}

// FindPage returns one listing window, newest stores first.
func (r *StoreRepository) FindPage(ctx context.Context, skip, limit int) ([]domain.Store, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := r.stores.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

// Count returns the total number of stores.
func (r *StoreRepository) Count(ctx context.Context) (int, error) {
	count, err := r.stores.CountDocuments(ctx, bson.M{})
	return int(count), err
}

// FindNear returns stores within maxDistanceMeters of the point, ordered
// nearest first by the 2dsphere index. Only the fields needed for map
// display are projected; reviews are never joined on this path.
func (r *StoreRepository) FindNear(ctx context.Context, lng, lat, maxDistanceMeters float64, limit int) ([]domain.Store, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": maxDistanceMeters,
			},
		},
	}
	opts := options.Find().
		SetProjection(bson.M{"slug": 1, "name": 1, "description": 1, "location": 1, "photo": 1}).
		SetLimit(int64(limit))

	cursor, err := r.stores.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

// Search runs the text index over name and description and returns matches
// with their relevance score, best first. Tie order between equal scores is
// whatever the index yields.
func (r *StoreRepository) Search(ctx context.Context, query string, limit int) ([]domain.ScoredStore, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{
			"name": 1, "slug": 1, "description": 1, "tags": 1,
			"location": 1, "photo": 1,
			"score": bson.M{"$meta": "textScore"},
		}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(limit))

	cursor, err := r.stores.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]domain.ScoredStore, 0)
	for cursor.Next(ctx) {
		var doc scoredStoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		results = append(results, domain.ScoredStore{
			Store: mapStoreDocument(doc.StoreDocument),
			Score: doc.Score,
		})
	}
	return results, cursor.Err()
}

// FindByTag returns stores carrying the tag. An empty tag matches every
// store with at least one tag.
func (r *StoreRepository) FindByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	var tagQuery any = tag
	if tag == "" {
		tagQuery = bson.M{"$exists": true}
	}
	cursor, err := r.stores.Find(ctx, bson.M{"tags": tagQuery})
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

// FindByIDs returns the stores whose id is in the set, unordered.
func (r *StoreRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("store id %q: %w", id, domain.ErrValidation)
		}
		objectIDs = append(objectIDs, objectID)
	}
	cursor, err := r.stores.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, err
	}
	return decodeStores(ctx, cursor)
}

// TagCounts runs the unwind/group/sort facet pipeline.
func (r *StoreRepository) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	cursor, err := r.stores.Aggregate(ctx, TagCountsPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make([]domain.TagCount, 0)
	for cursor.Next(ctx) {
		var doc tagCountDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		counts = append(counts, domain.TagCount{Tag: doc.Tag, Count: doc.Count})
	}
	return counts, cursor.Err()
}

// TopRated runs the lookup/match/project/sort/limit rating pipeline.
func (r *StoreRepository) TopRated(ctx context.Context, minReviews, limit int) ([]domain.RatedStore, error) {
	cursor, err := r.stores.Aggregate(ctx, TopRatedPipeline(r.reviews, minReviews, limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rated := make([]domain.RatedStore, 0)
	for cursor.Next(ctx) {
		var doc ratedStoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rated = append(rated, domain.RatedStore{
			Store: domain.Store{
				ID:    doc.ID.Hex(),
				Name:  doc.Name,
				Slug:  doc.Slug,
				Photo: doc.Photo,
			},
			AverageRating: doc.AverageRating,
			ReviewCount:   len(doc.Reviews),
		})
	}
	return rated, cursor.Err()
}

func buildStoreDocument(store *domain.Store, id, author primitive.ObjectID) StoreDocument {
	return StoreDocument{
		ID:          id,
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        store.Tags,
		Location: LocationDocument{
			Type:        store.Location.Type,
			Coordinates: store.Location.Coordinates,
			Address:     store.Location.Address,
		},
		Photo:   store.Photo,
		Author:  author,
		Created: store.CreatedAt,
	}
}

func decodeStores(ctx context.Context, cursor *mongo.Cursor) ([]domain.Store, error) {
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, mapStoreDocument(doc))
	}
	return stores, cursor.Err()
}

func mapFindError(err error, key string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("store %s: %w", key, domain.ErrNotFound)
	}
	return err
}
