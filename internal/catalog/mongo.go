package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"folio-backend/internal/content"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document is the stored form: the case study plus its declaration index.
type document struct {
	content.CaseStudy `bson:",inline"`
	SortOrder         int       `bson:"sort_order"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]content.CaseStudy, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "sort_order", Value: 1},
		{Key: "slug", Value: 1},
	})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]content.CaseStudy, 0)
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.CaseStudy)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoRepository) FindBySlug(ctx context.Context, slug string) (content.CaseStudy, error) {
	var doc document
	err := r.col.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return content.CaseStudy{}, ErrNotFound
		}
		return content.CaseStudy{}, err
	}
	return doc.CaseStudy, nil
}

// Upsert stores item at position sortOrder, keyed by slug.
func (r *MongoRepository) Upsert(ctx context.Context, item content.CaseStudy, sortOrder int, now time.Time) error {
	doc := document{CaseStudy: item, SortOrder: sortOrder, UpdatedAt: now}
	_, err := r.col.ReplaceOne(ctx, bson.M{"slug": item.Slug}, doc, options.Replace().SetUpsert(true))
	return err
}

// Prune deletes records whose slug is not in keep and reports how many
// were removed.
func (r *MongoRepository) Prune(ctx context.Context, keep []string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"slug": bson.M{"$nin": keep}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
