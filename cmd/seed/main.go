// Command seed fills a database with sample users, stores and reviews so
// the API has something to serve during local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
	mongodoc "github.com/tastetrail/tastetrail-services/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	storeCount  int
	reviewCount int
	userCount   int
	drop        bool
	randomSeed  int64
}

var (
	nameParts = []string{"Bandit", "Harvest", "Copper", "Velvet", "Juniper", "Ember", "Wild", "Golden", "Lucky", "Midnight"}
	nameKinds = []string{"Cafe", "Diner", "Grill", "Bakery", "Taproom", "Kitchen", "Deli", "Bistro"}
	tagPool   = []string{"Wifi", "Open Late", "Family Friendly", "Vegetarian", "Licensed"}
	// Downtown Toronto; stores are jittered a few kilometres around it.
	baseLng, baseLat = -79.3832, 43.6532
)

func main() {
	opts := seedOptions{}
	flag.IntVar(&opts.storeCount, "stores", 24, "number of stores to create")
	flag.IntVar(&opts.reviewCount, "reviews", 80, "number of reviews to create")
	flag.IntVar(&opts.userCount, "users", 8, "number of users to create")
	flag.BoolVar(&opts.drop, "drop", false, "drop the collections before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	logger := log.New(os.Stdout, "[tastetrail-seed] ", log.LstdFlags)
	rng := rand.New(rand.NewSource(opts.randomSeed))

	uri := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "tastetrail")
	storeCollection := envOrDefault("STORE_COLLECTION", "stores")
	reviewCollection := envOrDefault("REVIEW_COLLECTION", "reviews")
	userCollection := envOrDefault("USER_COLLECTION", "users")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Fatalf("MongoDB connection failed: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("error disconnecting MongoDB: %v", err)
		}
	}()

	db := client.Database(dbName)
	stores := db.Collection(storeCollection)
	reviews := db.Collection(reviewCollection)
	users := db.Collection(userCollection)

	if opts.drop {
		for _, coll := range []*mongo.Collection{stores, reviews, users} {
			if err := coll.Drop(ctx); err != nil {
				logger.Fatalf("dropping %s failed: %v", coll.Name(), err)
			}
		}
	}

	if err := mongodoc.EnsureIndexes(ctx, db, storeCollection, reviewCollection); err != nil {
		logger.Fatalf("index bootstrap failed: %v", err)
	}

	userIDs := seedUsers(ctx, logger, users, opts.userCount)
	storeIDs := seedStores(ctx, logger, stores, rng, opts.storeCount, userIDs)
	seedReviews(ctx, logger, reviews, rng, opts.reviewCount, storeIDs, userIDs)

	logger.Printf("seeded %d users, %d stores, %d reviews", opts.userCount, opts.storeCount, opts.reviewCount)
}

func seedUsers(ctx context.Context, logger *log.Logger, coll *mongo.Collection, count int) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, count)
	docs := make([]any, 0, count)
	for i := 0; i < count; i++ {
		id := primitive.NewObjectID()
		ids = append(ids, id)
		docs = append(docs, mongodoc.UserDocument{
			ID:    id,
			Email: fmt.Sprintf("taster%02d@example.com", i+1),
			Name:  fmt.Sprintf("Taster %02d", i+1),
		})
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		logger.Fatalf("inserting users failed: %v", err)
	}
	return ids
}

func seedStores(ctx context.Context, logger *log.Logger, coll *mongo.Collection, rng *rand.Rand, count int, authors []primitive.ObjectID) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, count)
	docs := make([]any, 0, count)
	seen := map[string]int{}

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("The %s %s", nameParts[rng.Intn(len(nameParts))], nameKinds[rng.Intn(len(nameKinds))])
		base := domain.MakeSlug(name)
		seen[base]++
		slug := base
		if seen[base] > 1 {
			slug = fmt.Sprintf("%s-%d", base, seen[base])
		}

		tags := pickTags(rng)
		id := primitive.NewObjectID()
		ids = append(ids, id)
		docs = append(docs, mongodoc.StoreDocument{
			ID:          id,
			Name:        name,
			Slug:        slug,
			Description: fmt.Sprintf("%s serving the neighbourhood since %d.", name, 1990+rng.Intn(30)),
			Tags:        tags,
			Location: mongodoc.LocationDocument{
				Type: "Point",
				Coordinates: []float64{
					baseLng + (rng.Float64()-0.5)*0.1,
					baseLat + (rng.Float64()-0.5)*0.1,
				},
				Address: fmt.Sprintf("%d King Street", 10+rng.Intn(900)),
			},
			Author:  authors[rng.Intn(len(authors))],
			Created: time.Now().Add(-time.Duration(rng.Intn(365*24)) * time.Hour).UTC(),
		})
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		logger.Fatalf("inserting stores failed: %v", err)
	}
	return ids
}

func seedReviews(ctx context.Context, logger *log.Logger, coll *mongo.Collection, rng *rand.Rand, count int, stores, authors []primitive.ObjectID) {
	comments := []string{
		"Great spot, would go again.",
		"Service was slow but the food made up for it.",
		"Best hidden gem in the neighbourhood.",
		"Decent, nothing special.",
		"Absolutely worth the detour.",
	}

	docs := make([]any, 0, count)
	for i := 0; i < count; i++ {
		docs = append(docs, mongodoc.ReviewDocument{
			ID:      primitive.NewObjectID(),
			Store:   stores[rng.Intn(len(stores))],
			Author:  authors[rng.Intn(len(authors))],
			Text:    comments[rng.Intn(len(comments))],
			Rating:  1 + rng.Intn(5),
			Created: time.Now().Add(-time.Duration(rng.Intn(180*24)) * time.Hour).UTC(),
		})
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		logger.Fatalf("inserting reviews failed: %v", err)
	}
}

func pickTags(rng *rand.Rand) []string {
	tags := make([]string, 0, 3)
	for _, tag := range tagPool {
		if rng.Intn(3) == 0 {
			tags = append(tags, tag)
		}
	}
	return tags
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
