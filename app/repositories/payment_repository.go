package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/boutique/app/models"
)

// PaymentRepository handles database operations for Payment.
type PaymentRepository struct {
	c collection[models.Payment]
}

func NewPaymentRepository(col *mongo.Collection) *PaymentRepository {
	return &PaymentRepository{c: newCollection[models.Payment](col)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	id, err := r.c.insert(ctx, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// List returns matching payments, newest paymentDate first.
func (r *PaymentRepository) List(ctx context.Context, userID primitive.ObjectID, f PaymentFilter) ([]models.Payment, error) {
	return r.c.find(ctx, f.bson(userID), bson.D{{Key: "paymentDate", Value: -1}})
}

func (r *PaymentRepository) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Payment, error) {
	return r.c.findOne(ctx, owned(userID, id))
}

// FindByCustomer returns the customer's payments, newest first.
func (r *PaymentRepository) FindByCustomer(ctx context.Context, userID primitive.ObjectID, q CustomerQuery) ([]models.Payment, error) {
	return r.c.find(ctx, CustomerFilter(userID, q), bson.D{{Key: "paymentDate", Value: -1}})
}

// FindByOrders returns payments linked to any of orderIDs.
func (r *PaymentRepository) FindByOrders(ctx context.Context, userID primitive.ObjectID, orderIDs []primitive.ObjectID) ([]models.Payment, error) {
	if len(orderIDs) == 0 {
		return []models.Payment{}, nil
	}
	return r.c.find(ctx, bson.M{"user": userID, "relatedOrder": bson.M{"$in": orderIDs}}, nil)
}

// Update replaces p. It returns ErrNotFound when p is not owned by p.User.
func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	stamp(&p.CreatedAt, &p.UpdatedAt)
	ok, err := r.c.replace(ctx, owned(p.User, p.ID), p)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return r.c.delete(ctx, userID, id)
}

// Stats groups payments by method summing amount.
func (r *PaymentRepository) Stats(ctx context.Context, userID primitive.ObjectID, rng DateRange) ([]Group, error) {
	return r.c.stats(ctx, DateFilter(userID, "paymentDate", rng), "paymentMethod", "amount")
}
