package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tastetrail/tastetrail-services/api/internal/catalog/domain"
)

// LocationDocument is the embedded GeoJSON point plus address on a store.
type LocationDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
	Address     string    `bson:"address"`
}

// StoreDocument is the MongoDB schema of a store.
type StoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	Tags        []string           `bson:"tags,omitempty"`
	Location    LocationDocument   `bson:"location"`
	Photo       string             `bson:"photo,omitempty"`
	Author      primitive.ObjectID `bson:"author"`
	Created     time.Time          `bson:"created"`
}

// scoredStoreDocument carries the textScore meta projection of a search.
type scoredStoreDocument struct {
	StoreDocument `bson:",inline"`
	Score         float64 `bson:"score"`
}

// ratedStoreDocument is the $project output of the top-rated pipeline.
type ratedStoreDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Slug          string             `bson:"slug"`
	Photo         string             `bson:"photo,omitempty"`
	AverageRating float64            `bson:"averageRating"`
	Reviews       []ReviewDocument   `bson:"reviews"`
}

// tagCountDocument is one $group row of the tag facet pipeline.
type tagCountDocument struct {
	Tag   string `bson:"_id"`
	Count int    `bson:"count"`
}

// ReviewDocument is the MongoDB schema of a review.
type ReviewDocument struct {
	ID      primitive.ObjectID `bson:"_id"`
	Store   primitive.ObjectID `bson:"store"`
	Author  primitive.ObjectID `bson:"author"`
	Text    string             `bson:"text"`
	Rating  int                `bson:"rating"`
	Created time.Time          `bson:"created"`
}

// UserDocument is the slice of the auth-owned user schema the catalog
// reads and writes: identity fields plus the hearts set.
type UserDocument struct {
	ID     primitive.ObjectID   `bson:"_id"`
	Email  string               `bson:"email"`
	Name   string               `bson:"name"`
	Hearts []primitive.ObjectID `bson:"hearts,omitempty"`
}

func mapStoreDocument(doc StoreDocument) domain.Store {
	return domain.Store{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Slug:        doc.Slug,
		Description: doc.Description,
		Tags:        append([]string{}, doc.Tags...),
		Location: domain.Location{
			Type:        doc.Location.Type,
			Coordinates: append([]float64{}, doc.Location.Coordinates...),
			Address:     doc.Location.Address,
		},
		Photo:     doc.Photo,
		AuthorID:  hexOrEmpty(doc.Author),
		CreatedAt: doc.Created,
	}
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	return domain.Review{
		ID:        doc.ID.Hex(),
		StoreID:   doc.Store.Hex(),
		AuthorID:  doc.Author.Hex(),
		Text:      doc.Text,
		Rating:    doc.Rating,
		CreatedAt: doc.Created,
	}
}

func mapUserDocument(doc UserDocument) domain.User {
	hearts := make([]string, 0, len(doc.Hearts))
	for _, id := range doc.Hearts {
		hearts = append(hearts, id.Hex())
	}
	return domain.User{
		ID:     doc.ID.Hex(),
		Email:  doc.Email,
		Name:   doc.Name,
		Hearts: hearts,
	}
}

// hexOrEmpty keeps projected documents (which omit author) from reporting
// the zero ObjectID as a real author.
func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
