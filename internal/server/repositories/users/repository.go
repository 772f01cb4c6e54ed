// Package users persists accounts.
package users

import (
	"context"

	"github.com/phonomarket/phono/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLanguage(ctx context.Context, id int64, language string) error
	Delete(ctx context.Context, id int64) error
}
