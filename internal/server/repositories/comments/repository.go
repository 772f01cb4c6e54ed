// Package comments persists listing comment threads.
package comments

import (
	"context"

	"github.com/phonomarket/phono/internal/server/models"
)

type Repository interface {
	ByProduct(ctx context.Context, productID int64) ([]models.CommentWithAuthor, error)
	GetWithAuthor(ctx context.Context, id int64) (*models.CommentWithAuthor, error)
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	Update(ctx context.Context, userID, id int64, text string) error
	Delete(ctx context.Context, userID, id int64) error
}
