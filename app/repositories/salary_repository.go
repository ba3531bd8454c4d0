package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/boutique/app/models"
)

type SalaryRepository struct {
	c collection[models.Salary]
}

func NewSalaryRepository(col *mongo.Collection) *SalaryRepository {
	return &SalaryRepository{c: newCollection[models.Salary](col)}
}

func (r *SalaryRepository) Create(ctx context.Context, s *models.Salary) error {
	stamp(&s.CreatedAt, &s.UpdatedAt)
	id, err := r.c.insert(ctx, s)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

func (r *SalaryRepository) List(ctx context.Context, userID primitive.ObjectID, f SalaryFilter) ([]models.Salary, error) {
	return r.c.find(ctx, f.bson(userID), bson.D{{Key: "paymentDate", Value: -1}})
}

func (r *SalaryRepository) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Salary, error) {
	return r.c.findOne(ctx, owned(userID, id))
}

func (r *SalaryRepository) Update(ctx context.Context, s *models.Salary) error {
	stamp(&s.CreatedAt, &s.UpdatedAt)
	ok, err := r.c.replace(ctx, owned(s.User, s.ID), s)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *SalaryRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.c.delete(ctx, userID, id)
}

// Stats groups salaries by employee summing amount.
func (r *SalaryRepository) Stats(ctx context.Context, userID primitive.ObjectID, rng DateRange) ([]Group, error) {
	return r.c.stats(ctx, DateFilter(userID, "paymentDate", rng), "employeeName", "amount")
}
