// Package favourites persists per-user bookmarks of listings.
package favourites

import (
	"context"

	"github.com/phonomarket/phono/internal/server/models"
)

type Repository interface {
	ItemsByUser(ctx context.Context, userID int64) ([]models.FavouriteItem, error)
	Add(ctx context.Context, userID, productID int64) (*models.FavouriteItem, error)
	RemoveByProduct(ctx context.Context, userID, productID int64) error
}
