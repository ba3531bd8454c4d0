// Package repositories holds the MongoDB data access for every entity. All
// reads and writes are scoped to the owning user.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/boutique/pkg/metrics"
)

// ErrNotFound is returned when a record is missing or owned by someone else.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// collection is the shared, user-scoped CRUD core that each typed repository
// embeds.
type collection[T any] struct {
	col  *mongo.Collection
	name string
}

func newCollection[T any](col *mongo.Collection) collection[T] {
	c := collection[T]{col: col}
	if col != nil {
		c.name = col.Name()
	}
	return c
}

func owned(userID, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user": userID}
}

func (c collection[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	defer metrics.ObserveDBQuery(c.name, "insert", time.Now())

	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, fmt.Errorf("%s: insert: %w", c.name, err)
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (c collection[T]) find(ctx context.Context, filter bson.M, sort bson.D) ([]T, error) {
	defer metrics.ObserveDBQuery(c.name, "find", time.Now())

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cur, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", c.name, err)
	}

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", c.name, err)
	}
	return out, nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	defer metrics.ObserveDBQuery(c.name, "find_one", time.Now())

	var doc T
	if err := c.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: find one: %w", c.name, err)
	}
	return &doc, nil
}

// replace swaps the stored document matching filter. It reports whether a
// document matched; callers decide whether no match means not-found or a
// lost race.
func (c collection[T]) replace(ctx context.Context, filter bson.M, doc *T) (bool, error) {
	defer metrics.ObserveDBQuery(c.name, "replace", time.Now())

	res, err := c.col.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return false, fmt.Errorf("%s: replace: %w", c.name, err)
	}
	return res.MatchedCount > 0, nil
}

func (c collection[T]) delete(ctx context.Context, userID, id primitive.ObjectID) error {
	defer metrics.ObserveDBQuery(c.name, "delete", time.Now())

	res, err := c.col.DeleteOne(ctx, owned(userID, id))
	if err != nil {
		return fmt.Errorf("%s: delete: %w", c.name, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Group is one row of a stats breakdown.
type Group struct {
	Key   string  `bson:"_id"`
	Count int64   `bson:"count"`
	Total float64 `bson:"total"`
}

// stats groups the documents matching match by groupField, counting them and
// summing sumField. An empty match yields an empty, non-nil slice.
func (c collection[T]) stats(ctx context.Context, match bson.M, groupField, sumField string) ([]Group, error) {
	defer metrics.ObserveDBQuery(c.name, "aggregate", time.Now())

	cur, err := c.col.Aggregate(ctx, statsPipeline(match, groupField, sumField))
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", c.name, err)
	}

	out := make([]Group, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode stats: %w", c.name, err)
	}
	return out, nil
}

func statsPipeline(match bson.M, groupField, sumField string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + groupField, ""}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + sumField, 0}}}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
