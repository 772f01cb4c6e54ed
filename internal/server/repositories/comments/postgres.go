package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/dbx"
	"github.com/phonomarket/phono/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const commentWithAuthor = `
	SELECT c.id, c.user_id, c.product_id, c.text, c.created_at, c.updated_at,
	       u.name, u.surname, u.avatar
	FROM comments c
	JOIN users u ON u.id = c.user_id`

func scanCommentWithAuthor(scan func(...any) error) (*models.CommentWithAuthor, error) {
	c := &models.CommentWithAuthor{}
	err := scan(&c.ID, &c.UserID, &c.ProductID, &c.Text, &c.CreatedAt, &c.UpdatedAt,
		&c.AuthorName, &c.AuthorSurname, &c.AuthorAvatar)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) ByProduct(ctx context.Context, productID int64) ([]models.CommentWithAuthor, error) {
	rows, err := r.db.QueryContext(ctx,
		commentWithAuthor+` WHERE c.product_id = $1 ORDER BY c.created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CommentWithAuthor
	for rows.Next() {
		c, err := scanCommentWithAuthor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) GetWithAuthor(ctx context.Context, id int64) (*models.CommentWithAuthor, error) {
	row := r.db.QueryRowContext(ctx, commentWithAuthor+` WHERE c.id = $1`, id)
	c, err := scanCommentWithAuthor(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO comments (user_id, product_id, text) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.UserID, c.ProductID, c.Text).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id int64, text string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET text = $3, updated_at = now() WHERE id = $1 AND user_id = $2`,
		id, userID, text)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}
