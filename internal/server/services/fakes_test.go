package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/dbx"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/catalog"
	"github.com/phonomarket/phono/internal/server/repositories/comments"
	"github.com/phonomarket/phono/internal/server/repositories/contacts"
	"github.com/phonomarket/phono/internal/server/repositories/favourites"
	"github.com/phonomarket/phono/internal/server/repositories/products"
	"github.com/phonomarket/phono/internal/server/repositories/refreshtokens"
	"github.com/phonomarket/phono/internal/server/repositories/users"
)

// In-memory repositories backing the service tests. The fake manager vends
// the same instances regardless of the DBTX it is handed.

type fakeUsers struct {
	nextID int64
	rows   map[int64]*models.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{rows: map[int64]*models.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	for _, row := range f.rows {
		if row.Phone == u.Phone {
			return nil, common.ErrorPhoneTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	u.IsActive = true
	cp := *u
	f.rows[u.ID] = &cp
	return u, nil
}

func (f *fakeUsers) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, row := range f.rows {
		if row.Phone == phone && row.IsActive {
			cp := *row
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	row, ok := f.rows[id]
	if !ok || !row.IsActive {
		return nil, common.ErrorNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) (*models.User, error) {
	row, ok := f.rows[u.ID]
	if !ok || !row.IsActive {
		return nil, common.ErrorNotFound
	}
	row.Name, row.Surname, row.DOB, row.Avatar = u.Name, u.Surname, u.DOB, u.Avatar
	cp := *row
	return &cp, nil
}

func (f *fakeUsers) UpdateLanguage(_ context.Context, id int64, lang string) error {
	row, ok := f.rows[id]
	if !ok || !row.IsActive {
		return common.ErrorNotFound
	}
	row.Language = lang
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	row, ok := f.rows[id]
	if !ok || !row.IsActive {
		return common.ErrorNotFound
	}
	row.IsActive = false
	return nil
}

type fakeContacts struct {
	nextID    int64
	phones    []models.Phone
	emails    []models.Email
	addresses []models.Address
}

func (f *fakeContacts) PhonesByUser(_ context.Context, userID int64) ([]models.Phone, error) {
	var out []models.Phone
	for _, p := range f.phones {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeContacts) AddPhone(_ context.Context, userID int64, phone string) (*models.Phone, error) {
	f.nextID++
	p := models.Phone{ID: f.nextID, UserID: userID, Phone: phone}
	f.phones = append(f.phones, p)
	return &p, nil
}

func (f *fakeContacts) DeletePhone(_ context.Context, userID, id int64) error {
	for i, p := range f.phones {
		if p.ID == id && p.UserID == userID {
			f.phones = append(f.phones[:i], f.phones[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeContacts) EmailsByUser(_ context.Context, userID int64) ([]models.Email, error) {
	var out []models.Email
	for _, e := range f.emails {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeContacts) AddEmail(_ context.Context, userID int64, email string) (*models.Email, error) {
	f.nextID++
	e := models.Email{ID: f.nextID, UserID: userID, Email: email, IsActive: true}
	f.emails = append(f.emails, e)
	return &e, nil
}

func (f *fakeContacts) EditEmail(_ context.Context, userID, id int64, email string) (*models.Email, error) {
	for i := range f.emails {
		if f.emails[i].ID == id && f.emails[i].UserID == userID {
			f.emails[i].Email = email
			e := f.emails[i]
			return &e, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeContacts) DeleteEmail(_ context.Context, userID, id int64) error {
	for i, e := range f.emails {
		if e.ID == id && e.UserID == userID {
			f.emails = append(f.emails[:i], f.emails[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeContacts) AddressesByUser(_ context.Context, userID int64) ([]models.Address, error) {
	var out []models.Address
	for _, a := range f.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeContacts) AddAddress(_ context.Context, addr *models.Address) (*models.Address, error) {
	f.nextID++
	addr.ID = f.nextID
	f.addresses = append(f.addresses, *addr)
	return addr, nil
}

func (f *fakeContacts) DeleteAddress(_ context.Context, userID, id int64) error {
	for i, a := range f.addresses {
		if a.ID == id && a.UserID == userID {
			f.addresses = append(f.addresses[:i], f.addresses[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeCatalog struct{}

func (fakeCatalog) Brands(context.Context) ([]models.Brand, error) {
	return []models.Brand{{ID: 1, Name: "Apple"}, {ID: 2, Name: "Samsung"}}, nil
}

func (fakeCatalog) Models(context.Context) ([]models.PhoneModel, error) {
	return []models.PhoneModel{{ID: 10, Name: "iPhone 13", BrandID: 1}, {ID: 20, Name: "Galaxy S22", BrandID: 2}}, nil
}

func (fakeCatalog) ModelsByBrand(_ context.Context, brandID int64) ([]models.PhoneModel, error) {
	all, _ := fakeCatalog{}.Models(context.Background())
	var out []models.PhoneModel
	for _, m := range all {
		if m.BrandID == brandID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (fakeCatalog) Colors(context.Context) ([]models.Color, error) {
	return []models.Color{{ID: 3, Name: "Black", Hex: "#000000"}}, nil
}

func (fakeCatalog) Regions(context.Context) ([]models.Region, error) {
	return []models.Region{{ID: 5, Name: "Tashkent"}}, nil
}

func (fakeCatalog) Cities(context.Context) ([]models.City, error) {
	return []models.City{{ID: 50, Name: "Chilonzor", RegionID: 5}}, nil
}

func (fakeCatalog) Currencies(context.Context) ([]models.Currency, error) {
	return []models.Currency{{ID: 1, Name: "Sum", Code: "UZS"}, {ID: 2, Name: "Dollar", Code: "USD"}}, nil
}

type fakeProducts struct {
	nextID     int64
	rows       map[int64]*models.Product
	images     map[int64]*models.ProductImage
	lastFilter *products.SearchFilter
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{rows: map[int64]*models.Product{}, images: map[int64]*models.ProductImage{}}
}

func (f *fakeProducts) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.rows[p.ID] = &cp
	return p, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*models.Product, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeProducts) Update(_ context.Context, p *models.Product) (*models.Product, error) {
	row, ok := f.rows[p.ID]
	if !ok || row.UserID != p.UserID {
		return nil, common.ErrorNotFound
	}
	*row = *p
	cp := *row
	return &cp, nil
}

func (f *fakeProducts) ByUser(_ context.Context, userID int64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Latest(_ context.Context, limit int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.rows {
		if !p.IsArchived && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProducts) ByBrand(_ context.Context, brandID int64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.rows {
		if !p.IsArchived && p.BrandID == brandID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProducts) ByModel(_ context.Context, modelID int64) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.rows {
		if !p.IsArchived && p.ModelID == modelID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Search(_ context.Context, filter products.SearchFilter) ([]models.Product, error) {
	f.lastFilter = &filter
	var out []models.Product
	for _, p := range f.rows {
		if p.IsArchived {
			continue
		}
		if filter.BrandID != 0 && p.BrandID != filter.BrandID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProducts) SetArchived(_ context.Context, userID, id int64, sold bool) error {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return common.ErrorNotFound
	}
	row.IsArchived, row.IsSold = true, sold
	return nil
}

func (f *fakeProducts) SetUnarchived(_ context.Context, userID, id int64) error {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return common.ErrorNotFound
	}
	row.IsArchived, row.IsSold = false, false
	return nil
}

func (f *fakeProducts) SetTop(_ context.Context, userID, id int64) error {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeProducts) IncrementViews(_ context.Context, id int64) error {
	if row, ok := f.rows[id]; ok {
		row.Views++
	}
	return nil
}

func (f *fakeProducts) ImagesByProducts(_ context.Context, ids []int64) ([]models.ProductImage, error) {
	var out []models.ProductImage
	for _, img := range f.images {
		for _, id := range ids {
			if img.ProductID == id {
				out = append(out, *img)
			}
		}
	}
	return out, nil
}

func (f *fakeProducts) AddImage(_ context.Context, img *models.ProductImage) (*models.ProductImage, error) {
	f.nextID++
	img.ID = f.nextID
	cp := *img
	f.images[img.ID] = &cp
	return img, nil
}

func (f *fakeProducts) GetImage(_ context.Context, id int64) (*models.ProductImage, error) {
	img, ok := f.images[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *img
	return &cp, nil
}

func (f *fakeProducts) DeleteImage(_ context.Context, userID, id int64) error {
	img, ok := f.images[id]
	if !ok {
		return common.ErrorNotFound
	}
	owner, ok := f.rows[img.ProductID]
	if !ok || owner.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.images, id)
	return nil
}

func (f *fakeProducts) ClearMainImage(_ context.Context, productID int64) error {
	for _, img := range f.images {
		if img.ProductID == productID {
			img.IsMain = false
		}
	}
	return nil
}

func (f *fakeProducts) SetMainImage(_ context.Context, userID, id int64) error {
	img, ok := f.images[id]
	if !ok {
		return common.ErrorNotFound
	}
	img.IsMain = true
	return nil
}

type fakeFavourites struct {
	nextID int64
	items  []models.FavouriteItem
}

func (f *fakeFavourites) ItemsByUser(_ context.Context, userID int64) ([]models.FavouriteItem, error) {
	var out []models.FavouriteItem
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeFavourites) Add(_ context.Context, userID, productID int64) (*models.FavouriteItem, error) {
	for _, it := range f.items {
		if it.UserID == userID && it.ProductID == productID {
			return nil, common.ErrAlreadyInFavourites
		}
	}
	f.nextID++
	it := models.FavouriteItem{ID: f.nextID, UserID: userID, ProductID: productID}
	f.items = append(f.items, it)
	return &it, nil
}

func (f *fakeFavourites) RemoveByProduct(_ context.Context, userID, productID int64) error {
	for i, it := range f.items {
		if it.UserID == userID && it.ProductID == productID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeComments struct {
	nextID int64
	rows   map[int64]*models.CommentWithAuthor
}

func newFakeComments() *fakeComments { return &fakeComments{rows: map[int64]*models.CommentWithAuthor{}} }

func (f *fakeComments) ByProduct(_ context.Context, productID int64) ([]models.CommentWithAuthor, error) {
	var out []models.CommentWithAuthor
	for _, c := range f.rows {
		if c.ProductID == productID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeComments) GetWithAuthor(_ context.Context, id int64) (*models.CommentWithAuthor, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = &models.CommentWithAuthor{Comment: *c}
	return c, nil
}

func (f *fakeComments) Update(_ context.Context, userID, id int64, text string) error {
	c, ok := f.rows[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	c.Text = text
	return nil
}

func (f *fakeComments) Delete(_ context.Context, userID, id int64) error {
	c, ok := f.rows[id]
	if !ok || c.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeRefreshTokens struct {
	rows map[string]models.RefreshToken
	next int64
}

func newFakeRefreshTokens() *fakeRefreshTokens {
	return &fakeRefreshTokens{rows: map[string]models.RefreshToken{}}
}

func (f *fakeRefreshTokens) Create(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	f.next++
	f.rows[token] = models.RefreshToken{ID: f.next, UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeRefreshTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := f.rows[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rt, nil
}

func (f *fakeRefreshTokens) Delete(_ context.Context, token string) error {
	if _, ok := f.rows[token]; !ok {
		return common.ErrorNotFound
	}
	delete(f.rows, token)
	return nil
}

// fakeManager vends the fakes above, ignoring the DBTX entirely.
type fakeManager struct {
	users         *fakeUsers
	contacts      *fakeContacts
	products      *fakeProducts
	favourites    *fakeFavourites
	comments      *fakeComments
	refreshTokens *fakeRefreshTokens
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		users:         newFakeUsers(),
		contacts:      &fakeContacts{},
		products:      newFakeProducts(),
		favourites:    &fakeFavourites{},
		comments:      newFakeComments(),
		refreshTokens: newFakeRefreshTokens(),
	}
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeManager) Users(dbx.DBTX) users.Repository                     { return m.users }
func (m *fakeManager) Contacts(dbx.DBTX) contacts.Repository               { return m.contacts }
func (m *fakeManager) Catalog(dbx.DBTX) catalog.Repository                 { return fakeCatalog{} }
func (m *fakeManager) Products(dbx.DBTX) products.Repository               { return m.products }
func (m *fakeManager) Favourites(dbx.DBTX) favourites.Repository           { return m.favourites }
func (m *fakeManager) Comments(dbx.DBTX) comments.Repository               { return m.comments }
func (m *fakeManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository     { return m.refreshTokens }
