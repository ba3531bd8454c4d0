package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
)

// The interfaces below are what the services need from storage. The
// repositories package satisfies them against MongoDB; tests use fakes.

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Order, error)
	FindByCustomer(ctx context.Context, userID primitive.ObjectID, q repositories.CustomerQuery) ([]models.Order, error)
	FindByIDs(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Order, error)
	ReplaceIfVersion(ctx context.Context, o *models.Order, expectedVersion int64, expectedAdvance float64) (bool, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) ([]repositories.Group, error)
}

// PaymentCreator is all the linkage applier needs.
type PaymentCreator interface {
	Create(ctx context.Context, p *models.Payment) error
}

type PaymentStore interface {
	PaymentCreator
	List(ctx context.Context, userID primitive.ObjectID, f repositories.PaymentFilter) ([]models.Payment, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Payment, error)
	FindByCustomer(ctx context.Context, userID primitive.ObjectID, q repositories.CustomerQuery) ([]models.Payment, error)
	FindByOrders(ctx context.Context, userID primitive.ObjectID, orderIDs []primitive.ObjectID) ([]models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) ([]repositories.Group, error)
}

type IncomeStore interface {
	Create(ctx context.Context, in *models.Income) error
	List(ctx context.Context, userID primitive.ObjectID, f repositories.IncomeFilter) ([]models.Income, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Income, error)
	Update(ctx context.Context, in *models.Income) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) ([]repositories.Group, error)
}

type MaterialPurchaseStore interface {
	Create(ctx context.Context, m *models.MaterialPurchase) error
	List(ctx context.Context, userID primitive.ObjectID, f repositories.PurchaseFilter) ([]models.MaterialPurchase, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*models.MaterialPurchase, error)
	Update(ctx context.Context, m *models.MaterialPurchase) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) ([]repositories.Group, error)
}

type SalaryStore interface {
	Create(ctx context.Context, s *models.Salary) error
	List(ctx context.Context, userID primitive.ObjectID, f repositories.SalaryFilter) ([]models.Salary, error)
	Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Salary, error)
	Update(ctx context.Context, s *models.Salary) error
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
	Stats(ctx context.Context, userID primitive.ObjectID, rng repositories.DateRange) ([]repositories.Group, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// Compile-time checks against the Mongo repositories.
var (
	_ OrderStore            = (*repositories.OrderRepository)(nil)
	_ PaymentStore          = (*repositories.PaymentRepository)(nil)
	_ IncomeStore           = (*repositories.IncomeRepository)(nil)
	_ MaterialPurchaseStore = (*repositories.MaterialPurchaseRepository)(nil)
	_ SalaryStore           = (*repositories.SalaryRepository)(nil)
	_ UserStore             = (*repositories.UserRepository)(nil)
)
