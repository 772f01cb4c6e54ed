package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/repomanager"
)

type FavouriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	products    *ProductService
}

func NewFavouriteService(db *sql.DB, m repomanager.RepositoryManager, products *ProductService) *FavouriteService {
	return &FavouriteService{db: db, repomanager: m, products: products}
}

// List returns the bookmarked listings with full details. Bookmarks whose
// listing is gone are skipped.
func (s *FavouriteService) List(ctx context.Context, userID int64) ([]ProductDetails, error) {
	items, err := s.repomanager.Favourites(s.db).ItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Products(s.db)
	var list []models.Product
	for _, it := range items {
		p, err := repo.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, err
		}
		list = append(list, *p)
	}

	return s.products.Details(ctx, list)
}

// Add bookmarks a listing. The listing must exist; bookmarking twice reports
// common.ErrAlreadyInFavourites.
func (s *FavouriteService) Add(ctx context.Context, userID, productID int64) error {
	if _, err := s.repomanager.Products(s.db).GetByID(ctx, productID); err != nil {
		return err
	}
	_, err := s.repomanager.Favourites(s.db).Add(ctx, userID, productID)
	return err
}

func (s *FavouriteService) Remove(ctx context.Context, userID, productID int64) error {
	return s.repomanager.Favourites(s.db).RemoveByProduct(ctx, userID, productID)
}
