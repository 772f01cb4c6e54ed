package contacts

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

func (r *PostgresRepository) PhonesByUser(ctx context.Context, userID int64) ([]models.Phone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, phone FROM user_phones WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var phones []models.Phone
	for rows.Next() {
		var p models.Phone
		if err := rows.Scan(&p.ID, &p.UserID, &p.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

func (r *PostgresRepository) AddPhone(ctx context.Context, userID int64, phone string) (*models.Phone, error) {
	p := &models.Phone{UserID: userID, Phone: phone}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_phones (user_id, phone) VALUES ($1, $2) RETURNING id`, userID, phone).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) DeletePhone(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_phones WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

func (r *PostgresRepository) EmailsByUser(ctx context.Context, userID int64) ([]models.Email, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, email, is_active FROM user_emails WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var emails []models.Email
	for rows.Next() {
		var e models.Email
		if err := rows.Scan(&e.ID, &e.UserID, &e.Email, &e.IsActive); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func (r *PostgresRepository) AddEmail(ctx context.Context, userID int64, email string) (*models.Email, error) {
	e := &models.Email{UserID: userID, Email: email, IsActive: true}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_emails (user_id, email) VALUES ($1, $2) RETURNING id`, userID, email).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) EditEmail(ctx context.Context, userID, id int64, email string) (*models.Email, error) {
	e := &models.Email{ID: id, UserID: userID, Email: email}
	err := r.db.QueryRowContext(ctx,
		`UPDATE user_emails SET email = $3 WHERE id = $1 AND user_id = $2 RETURNING is_active`,
		id, userID, email).Scan(&e.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) DeleteEmail(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_emails WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}

func (r *PostgresRepository) AddressesByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, address, lat, long, region_id FROM user_addresses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var addrs []models.Address
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Address, &a.Lat, &a.Long, &a.RegionID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (r *PostgresRepository) AddAddress(ctx context.Context, addr *models.Address) (*models.Address, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_addresses (user_id, name, address, lat, long, region_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		addr.UserID, addr.Name, addr.Address, addr.Lat, addr.Long, addr.RegionID).Scan(&addr.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return addr, nil
}

func (r *PostgresRepository) DeleteAddress(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireRowsAffected(res)
}
