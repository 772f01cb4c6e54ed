// Package contacts persists the user's additional phone numbers, emails and
// addresses. Every mutation is scoped by user id, so one user can never touch
// another user's contact rows.
package contacts

import (
	"context"

	"github.com/phonomarket/phono/internal/server/models"
)

type Repository interface {
	PhonesByUser(ctx context.Context, userID int64) ([]models.Phone, error)
	AddPhone(ctx context.Context, userID int64, phone string) (*models.Phone, error)
	DeletePhone(ctx context.Context, userID, id int64) error

	EmailsByUser(ctx context.Context, userID int64) ([]models.Email, error)
	AddEmail(ctx context.Context, userID int64, email string) (*models.Email, error)
	EditEmail(ctx context.Context, userID, id int64, email string) (*models.Email, error)
	DeleteEmail(ctx context.Context, userID, id int64) error

	AddressesByUser(ctx context.Context, userID int64) ([]models.Address, error)
	AddAddress(ctx context.Context, addr *models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, id int64) error
}
