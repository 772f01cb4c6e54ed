package favourites

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/dbx"
	"github.com/phonomarket/phono/internal/server/models"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ItemsByUser(ctx context.Context, userID int64) ([]models.FavouriteItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, product_id FROM favourite_items WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []models.FavouriteItem
	for rows.Next() {
		var it models.FavouriteItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Add inserts the bookmark. A duplicate insert reports
// common.ErrAlreadyInFavourites; the endpoint is not idempotent.
func (r *PostgresRepository) Add(ctx context.Context, userID, productID int64) (*models.FavouriteItem, error) {
	it := &models.FavouriteItem{UserID: userID, ProductID: productID}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO favourite_items (user_id, product_id) VALUES ($1, $2) RETURNING id`,
		userID, productID).Scan(&it.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrAlreadyInFavourites
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) RemoveByProduct(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favourite_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}
