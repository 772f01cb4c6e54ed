// Package refreshtokens persists long-lived refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/phonomarket/phono/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
}
