package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/boutique/app/models"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	c collection[models.Order]
}

func NewOrderRepository(col *mongo.Collection) *OrderRepository {
	return &OrderRepository{c: newCollection[models.Order](col)}
}

// Create inserts o and sets its ID.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	stamp(&o.CreatedAt, &o.UpdatedAt)
	id, err := r.c.insert(ctx, o)
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

// List returns the user's orders, newest first.
func (r *OrderRepository) List(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.c.find(ctx, bson.M{"user": userID}, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *OrderRepository) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Order, error) {
	return r.c.findOne(ctx, owned(userID, id))
}

// FindByCustomer returns the customer's orders, newest orderDate first.
func (r *OrderRepository) FindByCustomer(ctx context.Context, userID primitive.ObjectID, q CustomerQuery) ([]models.Order, error) {
	return r.c.find(ctx, CustomerFilter(userID, q), bson.D{{Key: "orderDate", Value: -1}})
}

// FindByIDs returns whichever of ids exist and belong to userID.
func (r *OrderRepository) FindByIDs(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Order, error) {
	if len(ids) == 0 {
		return []models.Order{}, nil
	}
	return r.c.find(ctx, bson.M{"user": userID, "_id": bson.M{"$in": ids}}, nil)
}

// ReplaceIfVersion writes o only if the stored document still carries
// expected version and advancePayment. It bumps o.Version on success and
// reports false when another writer got there first.
func (r *OrderRepository) ReplaceIfVersion(ctx context.Context, o *models.Order, expectedVersion int64, expectedAdvance float64) (bool, error) {
	filter := casFilter(o, expectedVersion, expectedAdvance)

	o.Version = expectedVersion + 1
	stamp(&o.CreatedAt, &o.UpdatedAt)

	ok, err := r.c.replace(ctx, filter, o)
	if err != nil || !ok {
		o.Version = expectedVersion
	}
	return ok, err
}

// casFilter matches o's stored document only while it is still owned by
// o.User and carries the version and advance the caller read.
func casFilter(o *models.Order, version int64, advance float64) bson.M {
	filter := owned(o.User, o.ID)
	filter["advancePayment"] = advance
	filter["version"] = versionMatch(version)
	return filter
}

// versionMatch treats a missing version field as version 0 so documents
// written before versioning still take part in the compare-and-swap.
func versionMatch(v int64) interface{} {
	if v == 0 {
		return bson.M{"$in": bson.A{0, nil}}
	}
	return v
}

func (r *OrderRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.c.delete(ctx, userID, id)
}

// Stats groups orders by status summing price. Orders are not date-filtered
// by default; a range applies to orderDate.
func (r *OrderRepository) Stats(ctx context.Context, userID primitive.ObjectID, rng DateRange) ([]Group, error) {
	return r.c.stats(ctx, DateFilter(userID, "orderDate", rng), "status", "price")
}
