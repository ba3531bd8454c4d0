package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/boutique/app/models"
	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/pkg/auth"
	"github.com/shashiranjanraj/boutique/pkg/database"
	"github.com/shashiranjanraj/boutique/pkg/logger"
)

const (
	AdminName     = "Admin"
	AdminEmail    = "admin@boutique.com"
	AdminPassword = "password@123"
)

func init() {
	Register("users", SeedUsers)
}

// userCreator is the slice of the user repository the seeder touches.
type userCreator interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// SeedUsers creates the default admin account unless it already exists.
func SeedUsers(ctx context.Context, store *database.Store) error {
	return seedAdmin(ctx, repositories.NewUserRepository(store.Collection(database.Users)))
}

func seedAdmin(ctx context.Context, users userCreator) error {
	if _, err := users.FindByEmail(ctx, AdminEmail); err == nil {
		logger.Info("admin user already present", "email", AdminEmail)
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return err
	}
	err = users.Create(ctx, &models.User{Name: AdminName, Email: AdminEmail, Password: hash})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil
	}
	return err
}
