package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/repomanager"
)

// ProfileService aggregates everything shown on the profile screen and
// handles the contact-detail mutations.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	products    *ProductService
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, products *ProductService) *ProfileService {
	return &ProfileService{db: db, repomanager: m, products: products}
}

// Me returns the whole profile in one aggregate: identity, contact details,
// favourites with their listings, and the user's own listings.
func (s *ProfileService) Me(ctx context.Context, userID int64) (*ProfileData, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	contacts := s.repomanager.Contacts(s.db)
	phones, err := contacts.PhonesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	emails, err := contacts.EmailsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	addresses, err := contacts.AddressesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	favourites, err := s.favouritesWithProducts(ctx, userID)
	if err != nil {
		return nil, err
	}

	own, err := s.repomanager.Products(s.db).ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ownDetails, err := s.products.Details(ctx, own)
	if err != nil {
		return nil, err
	}

	return &ProfileData{
		User:       *user,
		Phones:     phones,
		Emails:     emails,
		Addresses:  addresses,
		Favourites: favourites,
		Products:   ownDetails,
	}, nil
}

func (s *ProfileService) favouritesWithProducts(ctx context.Context, userID int64) ([]FavouriteWithProduct, error) {
	items, err := s.repomanager.Favourites(s.db).ItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	repo := s.repomanager.Products(s.db)
	var list []models.Product
	kept := make([]models.FavouriteItem, 0, len(items))
	for _, it := range items {
		p, err := repo.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// The listing is gone; the bookmark is shown without it.
				kept = append(kept, it)
				continue
			}
			return nil, err
		}
		kept = append(kept, it)
		list = append(list, *p)
	}

	details, err := s.products.Details(ctx, list)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*ProductDetails, len(details))
	for i := range details {
		byID[details[i].Product.ID] = &details[i]
	}

	result := make([]FavouriteWithProduct, len(kept))
	for i, it := range kept {
		result[i] = FavouriteWithProduct{Item: it, Product: byID[it.ProductID]}
	}
	return result, nil
}

func (s *ProfileService) Update(ctx context.Context, userID int64, name, surname, dob, avatar *string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		user.Name = *name
	}
	if surname != nil {
		user.Surname = *surname
	}
	if dob != nil {
		user.DOB = dob
	}
	if avatar != nil {
		user.Avatar = avatar
	}

	return repo.Update(ctx, user)
}

func (s *ProfileService) ChangeLanguage(ctx context.Context, userID int64, language string) error {
	return s.repomanager.Users(s.db).UpdateLanguage(ctx, userID, language)
}

func (s *ProfileService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.repomanager.Users(s.db).Delete(ctx, userID)
}

func (s *ProfileService) AddPhone(ctx context.Context, userID int64, phone string) (*models.Phone, error) {
	return s.repomanager.Contacts(s.db).AddPhone(ctx, userID, phone)
}

func (s *ProfileService) DeletePhone(ctx context.Context, userID, id int64) error {
	return s.repomanager.Contacts(s.db).DeletePhone(ctx, userID, id)
}

func (s *ProfileService) AddEmail(ctx context.Context, userID int64, email string) (*models.Email, error) {
	return s.repomanager.Contacts(s.db).AddEmail(ctx, userID, email)
}

func (s *ProfileService) EditEmail(ctx context.Context, userID, id int64, email string) (*models.Email, error) {
	return s.repomanager.Contacts(s.db).EditEmail(ctx, userID, id, email)
}

func (s *ProfileService) DeleteEmail(ctx context.Context, userID, id int64) error {
	return s.repomanager.Contacts(s.db).DeleteEmail(ctx, userID, id)
}

func (s *ProfileService) AddAddress(ctx context.Context, addr *models.Address) (*models.Address, error) {
	return s.repomanager.Contacts(s.db).AddAddress(ctx, addr)
}

func (s *ProfileService) DeleteAddress(ctx context.Context, userID, id int64) error {
	return s.repomanager.Contacts(s.db).DeleteAddress(ctx, userID, id)
}
