package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/boutique/app/models"
)

type IncomeRepository struct {
	c collection[models.Income]
}

func NewIncomeRepository(col *mongo.Collection) *IncomeRepository {
	return &IncomeRepository{c: newCollection[models.Income](col)}
}

func (r *IncomeRepository) Create(ctx context.Context, in *models.Income) error {
	stamp(&in.CreatedAt, &in.UpdatedAt)
	id, err := r.c.insert(ctx, in)
	if err != nil {
		return err
	}
	in.ID = id
	return nil
}

func (r *IncomeRepository) List(ctx context.Context, userID primitive.ObjectID, f IncomeFilter) ([]models.Income, error) {
	return r.c.find(ctx, f.bson(userID), bson.D{{Key: "incomeDate", Value: -1}})
}

func (r *IncomeRepository) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Income, error) {
	return r.c.findOne(ctx, owned(userID, id))
}

func (r *IncomeRepository) Update(ctx context.Context, in *models.Income) error {
	stamp(&in.CreatedAt, &in.UpdatedAt)
	ok, err := r.c.replace(ctx, owned(in.User, in.ID), in)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *IncomeRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.c.delete(ctx, userID, id)
}

// Stats groups incomes by type summing amount.
func (r *IncomeRepository) Stats(ctx context.Context, userID primitive.ObjectID, rng DateRange) ([]Group, error) {
	return r.c.stats(ctx, DateFilter(userID, "incomeDate", rng), "incomeType", "amount")
}
