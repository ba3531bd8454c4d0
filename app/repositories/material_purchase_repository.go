package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/boutique/app/models"
)

type MaterialPurchaseRepository struct {
	c collection[models.MaterialPurchase]
}

func NewMaterialPurchaseRepository(col *mongo.Collection) *MaterialPurchaseRepository {
	return &MaterialPurchaseRepository{c: newCollection[models.MaterialPurchase](col)}
}

func (r *MaterialPurchaseRepository) Create(ctx context.Context, m *models.MaterialPurchase) error {
	stamp(&m.CreatedAt, &m.UpdatedAt)
	id, err := r.c.insert(ctx, m)
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r *MaterialPurchaseRepository) List(ctx context.Context, userID primitive.ObjectID, f PurchaseFilter) ([]models.MaterialPurchase, error) {
	return r.c.find(ctx, f.bson(userID), bson.D{{Key: "purchaseDate", Value: -1}})
}

func (r *MaterialPurchaseRepository) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.MaterialPurchase, error) {
	return r.c.findOne(ctx, owned(userID, id))
}

func (r *MaterialPurchaseRepository) Update(ctx context.Context, m *models.MaterialPurchase) error {
	stamp(&m.CreatedAt, &m.UpdatedAt)
	ok, err := r.c.replace(ctx, owned(m.User, m.ID), m)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *MaterialPurchaseRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.c.delete(ctx, userID, id)
}

// Stats groups purchases by supplier summing totalCost.
func (r *MaterialPurchaseRepository) Stats(ctx context.Context, userID primitive.ObjectID, rng DateRange) ([]Group, error) {
	return r.c.stats(ctx, DateFilter(userID, "purchaseDate", rng), "supplierName", "totalCost")
}
