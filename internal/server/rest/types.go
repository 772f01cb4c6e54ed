package rest

import (
	"time"

	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/services"
)

// Wire types for the JSON API. Shapes are shared with the client package;
// changing a tag here breaks deployed clients.

type registerRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type registerResponse struct {
	UUID   string `json:"uuid"`
	Expire string `json:"expire"`
	Phone  string `json:"phone"`
}

type verifyOTPRequest struct {
	OTP  string `json:"otp"`
	UUID string `json:"uuid"`
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type productImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	ProductID int64  `json:"product_id"`
	IsMain    bool   `json:"is_main"`
}

type phoneModel struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	BrandID int64  `json:"brand_id"`
}

type brand struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Logo   string       `json:"logo"`
	Models []phoneModel `json:"models,omitempty"`
}

type color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type city struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RegionID int64  `json:"region_id"`
}

type region struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Cities []city `json:"cities,omitempty"`
}

type currency struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type commentAuthor struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Avatar  *string `json:"avatar"`
}

type comment struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	ProductID int64          `json:"product_id"`
	Text      string         `json:"text"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	User      *commentAuthor `json:"user,omitempty"`
}

type phone struct {
	ID     int64  `json:"id"`
	Phone  string `json:"phone"`
	UserID int64  `json:"user_id"`
}

type email struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type address struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Lat      *string `json:"lat"`
	Long     *string `json:"long"`
	UserID   int64   `json:"user_id"`
	RegionID int64   `json:"region_id,omitempty"`
}

type product struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"user_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Year          int            `json:"year"`
	BrandID       int64          `json:"brand_id"`
	ModelID       int64          `json:"model_id"`
	CustomModel   *string        `json:"custom_model"`
	ColorID       int64          `json:"color_id"`
	Price         int64          `json:"price"`
	FloorPrice    bool           `json:"floor_price"`
	CurrencyID    int64          `json:"currency_id"`
	IsNew         bool           `json:"is_new"`
	HasDocument   bool           `json:"has_document"`
	AddressID     int64          `json:"address_id"`
	PhoneID       int64          `json:"phone_id"`
	Storage       int            `json:"storage"`
	RAM           int            `json:"ram"`
	Views         int64          `json:"views"`
	IsArchived    bool           `json:"is_archived"`
	IsSold        bool           `json:"is_sold"`
	IsChecked     bool           `json:"is_checked"`
	TopExpireDate string         `json:"top_expire_date"`
	Images        []productImage `json:"images,omitempty"`
	Brand         *brand         `json:"brand,omitempty"`
	Model         *phoneModel    `json:"model,omitempty"`
	Color         *color         `json:"color,omitempty"`
	Currency      *currency      `json:"currency,omitempty"`
	Address       *address       `json:"address,omitempty"`
	ContactPhone  *phone         `json:"contact_phone,omitempty"`
}

type favouriteItem struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	Product   *product `json:"product,omitempty"`
}

type userProfile struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Surname          string          `json:"surname"`
	Phone            string          `json:"phone"`
	Avatar           *string         `json:"avatar"`
	Balance          int64           `json:"balance"`
	CurrencyID       int64           `json:"currency_id"`
	IsActive         bool            `json:"is_active"`
	DOB              *string         `json:"dob"`
	Language         string          `json:"language,omitempty"`
	Addresses        []address       `json:"addresses"`
	AdditionalPhones []phone         `json:"additional_phones"`
	Emails           []email         `json:"emails"`
	FavouriteItems   []favouriteItem `json:"favourite_items"`
	Products         []product       `json:"products"`
}

type profileUpdateRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	DOB     *string `json:"dob"`
	Avatar  *string `json:"avatar"`
}

type addressRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     *string `json:"lat"`
	Long    *string `json:"long"`
}

type productRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Year        int     `json:"year"`
	BrandID     int64   `json:"brand_id"`
	ModelID     int64   `json:"model_id"`
	CustomModel *string `json:"custom_model"`
	ColorID     int64   `json:"color_id"`
	Price       int64   `json:"price"`
	FloorPrice  bool    `json:"floor_price"`
	CurrencyID  int64   `json:"currency_id"`
	IsNew       bool    `json:"is_new"`
	HasDocument bool    `json:"has_document"`
	AddressID   int64   `json:"address_id"`
	PhoneID     int64   `json:"phone_id"`
	Storage     int     `json:"storage"`
	RAM         int     `json:"ram"`
}

type searchRequest struct {
	Search     string `json:"search"`
	RegionID   int64  `json:"region_id"`
	BrandID    int64  `json:"brand_id"`
	ModelID    int64  `json:"model_id"`
	ColorID    int64  `json:"color_id"`
	PriceFrom  int64  `json:"price_from"`
	PriceTo    int64  `json:"price_to"`
	MemoryFrom int    `json:"memory_from"`
	MemoryTo   int    `json:"memory_to"`
	Top        bool   `json:"top"`
}

type homepageData struct {
	Products []product `json:"products"`
	Brands   []brand   `json:"brands"`
	Colors   []color   `json:"colors,omitempty"`
	Regions  []region  `json:"regions,omitempty"`
}

func timeString(t time.Time) string {
	return t.Format(time.RFC3339)
}

func toBrand(b models.Brand) brand {
	return brand{ID: b.ID, Name: b.Name, Logo: b.Logo}
}

func toPhoneModel(m models.PhoneModel) phoneModel {
	return phoneModel{ID: m.ID, Name: m.Name, BrandID: m.BrandID}
}

func toColor(c models.Color) color {
	return color{ID: c.ID, Name: c.Name, Hex: c.Hex}
}

func toRegion(r models.Region) region {
	return region{ID: r.ID, Name: r.Name}
}

func toCurrency(c models.Currency) currency {
	return currency{ID: c.ID, Name: c.Name, Symbol: c.Code}
}

func toPhone(p models.Phone) phone {
	return phone{ID: p.ID, Phone: p.Phone, UserID: p.UserID}
}

func toEmail(e models.Email) email {
	return email{ID: e.ID, UserID: e.UserID, Email: e.Email, IsActive: e.IsActive}
}

func toAddress(a models.Address) address {
	out := address{
		ID:      a.ID,
		Name:    a.Name,
		Address: a.Address,
		Lat:     a.Lat,
		Long:    a.Long,
		UserID:  a.UserID,
	}
	if a.RegionID != nil {
		out.RegionID = *a.RegionID
	}
	return out
}

func toProductImage(img models.ProductImage) productImage {
	return productImage{ID: img.ID, URL: img.URL, ProductID: img.ProductID, IsMain: img.IsMain}
}

func toComment(c models.CommentWithAuthor) comment {
	return comment{
		ID:        c.ID,
		UserID:    c.UserID,
		ProductID: c.ProductID,
		Text:      c.Text,
		CreatedAt: timeString(c.CreatedAt),
		UpdatedAt: timeString(c.UpdatedAt),
		User: &commentAuthor{
			ID:      c.UserID,
			Name:    c.AuthorName,
			Surname: c.AuthorSurname,
			Avatar:  c.AuthorAvatar,
		},
	}
}

func toComments(list []models.CommentWithAuthor) []comment {
	out := make([]comment, len(list))
	for i, c := range list {
		out[i] = toComment(c)
	}
	return out
}

func toProduct(d services.ProductDetails) product {
	p := d.Product
	out := product{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		Year:        p.Year,
		BrandID:     p.BrandID,
		ModelID:     p.ModelID,
		CustomModel: p.CustomModel,
		ColorID:     p.ColorID,
		Price:       p.Price,
		FloorPrice:  p.FloorPrice,
		CurrencyID:  p.CurrencyID,
		IsNew:       p.IsNew,
		HasDocument: p.HasDocument,
		AddressID:   p.AddressID,
		PhoneID:     p.PhoneID,
		Storage:     p.Storage,
		RAM:         p.RAM,
		Views:       p.Views,
		IsArchived:  p.IsArchived,
		IsSold:      p.IsSold,
		IsChecked:   p.IsChecked,
	}
	if p.TopExpireDate != nil {
		out.TopExpireDate = timeString(*p.TopExpireDate)
	}
	for _, img := range d.Images {
		out.Images = append(out.Images, toProductImage(img))
	}
	if d.Brand != nil {
		b := toBrand(*d.Brand)
		out.Brand = &b
	}
	if d.Model != nil {
		m := toPhoneModel(*d.Model)
		out.Model = &m
	}
	if d.Color != nil {
		c := toColor(*d.Color)
		out.Color = &c
	}
	if d.Currency != nil {
		c := toCurrency(*d.Currency)
		out.Currency = &c
	}
	if d.Address != nil {
		a := toAddress(*d.Address)
		out.Address = &a
	}
	if d.ContactPhone != nil {
		ph := toPhone(*d.ContactPhone)
		out.ContactPhone = &ph
	}
	return out
}

func toProducts(list []services.ProductDetails) []product {
	out := make([]product, len(list))
	for i, d := range list {
		out[i] = toProduct(d)
	}
	return out
}

func toUserProfile(data *services.ProfileData) userProfile {
	u := data.User
	out := userProfile{
		ID:               u.ID,
		Name:             u.Name,
		Surname:          u.Surname,
		Phone:            u.Phone,
		Avatar:           u.Avatar,
		Balance:          u.Balance,
		CurrencyID:       u.CurrencyID,
		IsActive:         u.IsActive,
		DOB:              u.DOB,
		Language:         u.Language,
		Addresses:        []address{},
		AdditionalPhones: []phone{},
		Emails:           []email{},
		FavouriteItems:   []favouriteItem{},
		Products:         []product{},
	}
	for _, a := range data.Addresses {
		out.Addresses = append(out.Addresses, toAddress(a))
	}
	for _, p := range data.Phones {
		out.AdditionalPhones = append(out.AdditionalPhones, toPhone(p))
	}
	for _, e := range data.Emails {
		out.Emails = append(out.Emails, toEmail(e))
	}
	for _, f := range data.Favourites {
		item := favouriteItem{ID: f.Item.ID, ProductID: f.Item.ProductID}
		if f.Product != nil {
			p := toProduct(*f.Product)
			item.Product = &p
		}
		out.FavouriteItems = append(out.FavouriteItems, item)
	}
	for _, d := range data.Products {
		out.Products = append(out.Products, toProduct(d))
	}
	return out
}

// toHomepage nests models under their brand and cities under their region.
func toHomepage(h *services.HomeData) homepageData {
	modelsByBrand := make(map[int64][]phoneModel)
	for _, m := range h.Models {
		modelsByBrand[m.BrandID] = append(modelsByBrand[m.BrandID], toPhoneModel(m))
	}
	citiesByRegion := make(map[int64][]city)
	for _, c := range h.Cities {
		citiesByRegion[c.RegionID] = append(citiesByRegion[c.RegionID], city{ID: c.ID, Name: c.Name, RegionID: c.RegionID})
	}

	out := homepageData{Products: []product{}, Brands: []brand{}}
	for _, d := range h.Products {
		out.Products = append(out.Products, toProduct(d))
	}
	for _, b := range h.Brands {
		wb := toBrand(b)
		wb.Models = modelsByBrand[b.ID]
		out.Brands = append(out.Brands, wb)
	}
	for _, c := range h.Colors {
		out.Colors = append(out.Colors, toColor(c))
	}
	for _, r := range h.Regions {
		wr := toRegion(r)
		wr.Cities = citiesByRegion[r.ID]
		out.Regions = append(out.Regions, wr)
	}
	return out
}
