// Package products persists listings and their photos and implements the
// search query.
package products

import (
	"context"

	"github.com/phonomarket/phono/internal/server/models"
)

// SearchFilter mirrors the search payload. Zero values mean "facet unset";
// Search may legitimately be empty when only facets are set.
type SearchFilter struct {
	Search     string
	RegionID   int64
	BrandID    int64
	ModelID    int64
	ColorID    int64
	PriceFrom  int64
	PriceTo    int64
	MemoryFrom int
	MemoryTo   int
	Top        bool
}

type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	ByUser(ctx context.Context, userID int64) ([]models.Product, error)
	Latest(ctx context.Context, limit int) ([]models.Product, error)
	ByBrand(ctx context.Context, brandID int64) ([]models.Product, error)
	ByModel(ctx context.Context, modelID int64) ([]models.Product, error)
	Search(ctx context.Context, f SearchFilter) ([]models.Product, error)

	SetArchived(ctx context.Context, userID, id int64, sold bool) error
	SetUnarchived(ctx context.Context, userID, id int64) error
	SetTop(ctx context.Context, userID, id int64) error
	IncrementViews(ctx context.Context, id int64) error

	ImagesByProducts(ctx context.Context, productIDs []int64) ([]models.ProductImage, error)
	AddImage(ctx context.Context, img *models.ProductImage) (*models.ProductImage, error)
	GetImage(ctx context.Context, id int64) (*models.ProductImage, error)
	DeleteImage(ctx context.Context, userID, id int64) error
	ClearMainImage(ctx context.Context, productID int64) error
	SetMainImage(ctx context.Context, userID, id int64) error
}
