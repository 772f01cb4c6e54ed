// Package catalog serves the reference tables: brands, models, colors,
// regions and currencies. They change rarely and are read by id or listed
// whole.
package catalog

import (
	"context"

	"github.com/phonomarket/phono/internal/server/models"
)

type Repository interface {
	Brands(ctx context.Context) ([]models.Brand, error)
	Models(ctx context.Context) ([]models.PhoneModel, error)
	ModelsByBrand(ctx context.Context, brandID int64) ([]models.PhoneModel, error)
	Colors(ctx context.Context) ([]models.Color, error)
	Regions(ctx context.Context) ([]models.Region, error)
	Cities(ctx context.Context) ([]models.City, error)
	Currencies(ctx context.Context) ([]models.Currency, error)
}
