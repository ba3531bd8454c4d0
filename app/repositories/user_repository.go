package repositories

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/boutique/app/models"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	c collection[models.User]
}

func NewUserRepository(col *mongo.Collection) *UserRepository {
	return &UserRepository{c: newCollection[models.User](col)}
}

// FindByEmail looks up a user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.c.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

// Create persists a new user. A taken email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	stamp(&u.CreatedAt, &u.UpdatedAt)
	id, err := r.c.insert(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}
