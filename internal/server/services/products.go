package services

import (
	"context"
	"database/sql"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/products"
	"github.com/phonomarket/phono/internal/server/repositories/repomanager"
)

type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

// catalogMaps loads the small reference tables once per request.
type catalogMaps struct {
	brands     map[int64]models.Brand
	models     map[int64]models.PhoneModel
	colors     map[int64]models.Color
	currencies map[int64]models.Currency
}

func (s *ProductService) loadCatalogMaps(ctx context.Context) (*catalogMaps, error) {
	repo := s.repomanager.Catalog(s.db)

	brands, err := repo.Brands(ctx)
	if err != nil {
		return nil, err
	}
	phoneModels, err := repo.Models(ctx)
	if err != nil {
		return nil, err
	}
	colors, err := repo.Colors(ctx)
	if err != nil {
		return nil, err
	}
	currencies, err := repo.Currencies(ctx)
	if err != nil {
		return nil, err
	}

	m := &catalogMaps{
		brands:     make(map[int64]models.Brand, len(brands)),
		models:     make(map[int64]models.PhoneModel, len(phoneModels)),
		colors:     make(map[int64]models.Color, len(colors)),
		currencies: make(map[int64]models.Currency, len(currencies)),
	}
	for _, b := range brands {
		m.brands[b.ID] = b
	}
	for _, pm := range phoneModels {
		m.models[pm.ID] = pm
	}
	for _, c := range colors {
		m.colors[c.ID] = c
	}
	for _, c := range currencies {
		m.currencies[c.ID] = c
	}
	return m, nil
}

func (m *catalogMaps) decorate(d *ProductDetails) {
	if b, ok := m.brands[d.Product.BrandID]; ok {
		d.Brand = &b
	}
	if pm, ok := m.models[d.Product.ModelID]; ok {
		d.Model = &pm
	}
	if c, ok := m.colors[d.Product.ColorID]; ok {
		d.Color = &c
	}
	if c, ok := m.currencies[d.Product.CurrencyID]; ok {
		d.Currency = &c
	}
}

// Details joins listings with their images and reference data. The order of
// the input is preserved.
func (s *ProductService) Details(ctx context.Context, list []models.Product) ([]ProductDetails, error) {
	if len(list) == 0 {
		return nil, nil
	}

	maps, err := s.loadCatalogMaps(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	images, err := s.repomanager.Products(s.db).ImagesByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	imagesByProduct := make(map[int64][]models.ProductImage)
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], img)
	}

	result := make([]ProductDetails, len(list))
	for i, p := range list {
		d := ProductDetails{Product: p, Images: imagesByProduct[p.ID]}
		maps.decorate(&d)
		result[i] = d
	}
	return result, nil
}

// Get returns a single listing with its contact details and bumps the view
// counter.
func (s *ProductService) Get(ctx context.Context, id int64) (*ProductDetails, error) {
	repo := s.repomanager.Products(s.db)

	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	p.Views++

	details, err := s.Details(ctx, []models.Product{*p})
	if err != nil {
		return nil, err
	}
	d := details[0]

	// Contact details are only exposed on the single-listing view.
	contacts := s.repomanager.Contacts(s.db)
	addrs, err := contacts.AddressesByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	for i := range addrs {
		if addrs[i].ID == p.AddressID {
			d.Address = &addrs[i]
			break
		}
	}
	phones, err := contacts.PhonesByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	for i := range phones {
		if phones[i].ID == p.PhoneID {
			d.ContactPhone = &phones[i]
			break
		}
	}

	return &d, nil
}

func (s *ProductService) Latest(ctx context.Context, limit int) ([]ProductDetails, error) {
	list, err := s.repomanager.Products(s.db).Latest(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.Details(ctx, list)
}

func (s *ProductService) ByBrand(ctx context.Context, brandID int64) ([]ProductDetails, error) {
	list, err := s.repomanager.Products(s.db).ByBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	return s.Details(ctx, list)
}

func (s *ProductService) ByModel(ctx context.Context, modelID int64) ([]ProductDetails, error) {
	list, err := s.repomanager.Products(s.db).ByModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	return s.Details(ctx, list)
}

func (s *ProductService) Search(ctx context.Context, f products.SearchFilter) ([]ProductDetails, error) {
	list, err := s.repomanager.Products(s.db).Search(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.Details(ctx, list)
}

// validateOwnedRefs checks that the address and phone attached to a listing
// belong to its owner.
func (s *ProductService) validateOwnedRefs(ctx context.Context, p *models.Product) error {
	contacts := s.repomanager.Contacts(s.db)

	addrs, err := contacts.AddressesByUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	addrOK := false
	for _, a := range addrs {
		if a.ID == p.AddressID {
			addrOK = true
			break
		}
	}
	if !addrOK {
		return common.ErrorValidation
	}

	phones, err := contacts.PhonesByUser(ctx, p.UserID)
	if err != nil {
		return err
	}
	for _, ph := range phones {
		if ph.ID == p.PhoneID {
			return nil
		}
	}
	return common.ErrorValidation
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) (*ProductDetails, error) {
	if err := s.validateOwnedRefs(ctx, p); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Products(s.db).Create(ctx, p)
	if err != nil {
		return nil, err
	}
	details, err := s.Details(ctx, []models.Product{*created})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *ProductService) Update(ctx context.Context, p *models.Product) (*ProductDetails, error) {
	if err := s.validateOwnedRefs(ctx, p); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Products(s.db).Update(ctx, p)
	if err != nil {
		return nil, err
	}
	details, err := s.Details(ctx, []models.Product{*updated})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *ProductService) Archive(ctx context.Context, userID, id int64, sold bool) error {
	return s.repomanager.Products(s.db).SetArchived(ctx, userID, id, sold)
}

func (s *ProductService) Unarchive(ctx context.Context, userID, id int64) error {
	return s.repomanager.Products(s.db).SetUnarchived(ctx, userID, id)
}

func (s *ProductService) Upgrade(ctx context.Context, userID, id int64) error {
	return s.repomanager.Products(s.db).SetTop(ctx, userID, id)
}

// Home assembles the landing page data.
func (s *ProductService) Home(ctx context.Context) (*HomeData, error) {
	details, err := s.Latest(ctx, 20)
	if err != nil {
		return nil, err
	}

	catalog := s.repomanager.Catalog(s.db)
	brands, err := catalog.Brands(ctx)
	if err != nil {
		return nil, err
	}
	phoneModels, err := catalog.Models(ctx)
	if err != nil {
		return nil, err
	}
	colors, err := catalog.Colors(ctx)
	if err != nil {
		return nil, err
	}
	regions, err := catalog.Regions(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := catalog.Cities(ctx)
	if err != nil {
		return nil, err
	}

	return &HomeData{
		Products: details,
		Brands:   brands,
		Models:   phoneModels,
		Colors:   colors,
		Regions:  regions,
		Cities:   cities,
	}, nil
}
