package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TagCountsPipeline unwinds every store's tags, groups per distinct value
// counting occurrences, and orders by count descending. A store carrying
// the same tag twice contributes twice.
func TagCountsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
}

// TopRatedPipeline joins each store to its reviews, keeps stores with at
// least minReviews of them, projects the mean rating, and returns the top
// rows by mean rating descending.
//
// The existence check on array index minReviews-1 is how "at least N
// reviews" is expressed without a $size stage, so a store with zero
// reviews never reaches the $avg.
func TopRatedPipeline(reviewCollection string, minReviews, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: reviewCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "store"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$match", Value: bson.D{
			{Key: fmt.Sprintf("reviews.%d", minReviews-1), Value: bson.D{{Key: "$exists", Value: true}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
			{Key: "name", Value: "$$ROOT.name"},
			{Key: "slug", Value: "$$ROOT.slug"},
			{Key: "photo", Value: "$$ROOT.photo"},
			{Key: "reviews", Value: "$$ROOT.reviews"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
}
