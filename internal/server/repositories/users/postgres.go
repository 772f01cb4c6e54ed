package users

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (phone, password_hash, name, surname)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Phone, user.PasswordHash, user.Name, user.Surname).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorPhoneTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.IsActive = true
	return user, nil
}

const userColumns = `id, phone, password_hash, name, surname, avatar, balance, currency_id, is_active, dob, language`

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Phone, &user.PasswordHash, &user.Name, &user.Surname,
		&user.Avatar, &user.Balance, &user.CurrencyID, &user.IsActive, &user.DOB, &user.Language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1 AND is_active`
	return r.scanUser(r.db.QueryRowContext(ctx, query, phone))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// Update overwrites the mutable profile fields and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users
		 SET name = $2, surname = $3, dob = $4, avatar = $5
		 WHERE id = $1 AND is_active
		 RETURNING ` + userColumns

	return r.scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Surname, user.DOB, user.Avatar))
}

func (r *PostgresRepository) UpdateLanguage(ctx context.Context, id int64, language string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET language = $2 WHERE id = $1 AND is_active`, id, language)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

// Delete deactivates the account; listings and comments keep their rows.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = false WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}
