package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the catalog queries depend on:
// a unique slug index (the storage-level backstop for slug races), the
// name+description text index behind relevance search, the 2dsphere index
// behind proximity search, and the review store-reference index behind the
// derived reviews relationship. Safe to run on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database, storeCollection, reviewCollection string) error {
	stores := db.Collection(storeCollection).Indexes()

	_, err := stores.CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("slug_unique").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
			},
			Options: options.Index().SetName("name_description_text"),
		},
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
	})
	if err != nil {
		return err
	}

	reviews := db.Collection(reviewCollection).Indexes()
	_, err = reviews.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "store", Value: 1}},
		Options: options.Index().SetName("store_ref"),
	})
	return err
}
