// Package users is the persistence side of the user directory.
package users

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

// Repository stores user accounts. Lookups return common.ErrorNotFound when no
// row matches; Create and Update return common.ErrorAlreadyExists when the
// email is already taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
