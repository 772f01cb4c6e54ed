package catalog

import (
	"context"
	"fmt"

	"github.com/phonomarket/phono/internal/dbx"
	"github.com/phonomarket/phono/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Brands(ctx context.Context) ([]models.Brand, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, logo FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Logo); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *PostgresRepository) Models(ctx context.Context) ([]models.PhoneModel, error) {
	return r.queryModels(ctx, `SELECT id, name, brand_id FROM phone_models ORDER BY name`)
}

func (r *PostgresRepository) ModelsByBrand(ctx context.Context, brandID int64) ([]models.PhoneModel, error) {
	return r.queryModels(ctx, `SELECT id, name, brand_id FROM phone_models WHERE brand_id = $1 ORDER BY name`, brandID)
}

func (r *PostgresRepository) queryModels(ctx context.Context, query string, args ...any) ([]models.PhoneModel, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.PhoneModel
	for rows.Next() {
		var m models.PhoneModel
		if err := rows.Scan(&m.ID, &m.Name, &m.BrandID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) Colors(ctx context.Context) ([]models.Color, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, hex FROM colors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var colors []models.Color
	for rows.Next() {
		var c models.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

func (r *PostgresRepository) Regions(ctx context.Context) ([]models.Region, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM regions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var regions []models.Region
	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(&reg.ID, &reg.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		regions = append(regions, reg)
	}
	return regions, rows.Err()
}

func (r *PostgresRepository) Cities(ctx context.Context) ([]models.City, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, region_id FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.RegionID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *PostgresRepository) Currencies(ctx context.Context) ([]models.Currency, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, code FROM currencies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var currencies []models.Currency
	for rows.Next() {
		var c models.Currency
		if err := rows.Scan(&c.ID, &c.Name, &c.Code); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}
