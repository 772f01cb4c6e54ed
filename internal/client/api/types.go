package api

// Wire types mirror the phono REST API. Field names and json tags follow the
// server responses; the client adds no invariants beyond shape.

type RegisterRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// RegisterResponse identifies a pending registration awaiting OTP
// confirmation.
type RegisterResponse struct {
	UUID   string `json:"uuid"`
	Expire string `json:"expire"`
	Phone  string `json:"phone"`
}

type VerifyOTPRequest struct {
	OTP    string `json:"otp"`
	UUID   string `json:"uuid"`
	Phone  string `json:"phone"`
	Expire string `json:"expire"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	ProductID int64  `json:"product_id"`
	IsMain    bool   `json:"is_main"`
}

type Model struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	BrandID int64  `json:"brand_id"`
}

type Brand struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Logo   string  `json:"logo"`
	Models []Model `json:"models,omitempty"`
}

type Color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type City struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RegionID int64  `json:"region_id"`
}

type Region struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Cities []City `json:"cities,omitempty"`
}

type Currency struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type CommentAuthor struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Avatar  *string `json:"avatar"`
}

type Comment struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	ProductID int64          `json:"product_id"`
	Text      string         `json:"text"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	User      *CommentAuthor `json:"user,omitempty"`
}

type Phone struct {
	ID     int64  `json:"id"`
	Phone  string `json:"phone"`
	UserID int64  `json:"user_id"`
}

type Email struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type Address struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Lat      *string `json:"lat"`
	Long     *string `json:"long"`
	UserID   int64   `json:"user_id"`
	RegionID int64   `json:"region_id,omitempty"`
}

type Product struct {
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
	Images        []ProductImage `json:"images,omitempty"`
	Brand         *Brand         `json:"brand,omitempty"`
	Model         *Model         `json:"model,omitempty"`
	Color         *Color         `json:"color,omitempty"`
	Currency      *Currency      `json:"currency,omitempty"`
	Address       *Address       `json:"address,omitempty"`
	ContactPhone  *Phone         `json:"contact_phone,omitempty"`
	Comments      []Comment      `json:"comments,omitempty"`
}

// MainImageURL returns the URL of the image flagged is_main, the first image
// when none is flagged, or "" for products without images.
func (p *Product) MainImageURL() string {
	for _, img := range p.Images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// FavouriteItem is a favourite reference embedded in the profile payload.
// The backend sometimes embeds the full product and sometimes only the id;
// the aggregator falls back to per-item fetches in the latter case.
type FavouriteItem struct {
	ID        int64    `json:"id"`
	ProductID int64    `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

type UserProfile struct {
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
	Addresses        []Address       `json:"addresses"`
	AdditionalPhones []Phone         `json:"additional_phones"`
	Emails           []Email         `json:"emails"`
	FavouriteItems   []FavouriteItem `json:"favourite_items"`
	Products         []Product       `json:"products"`
}

// ProfileUpdate carries the PATCH /user/profile fields. Nil pointers are
// omitted so unrelated fields keep their server values.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	Surname *string `json:"surname,omitempty"`
	DOB     *string `json:"dob,omitempty"`
	Avatar  *string `json:"avatar,omitempty"`
}

type AddressRequest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     *string `json:"lat,omitempty"`
	Long    *string `json:"long,omitempty"`
}

type ProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Year        int     `json:"year"`
	BrandID     int64   `json:"brand_id"`
	ModelID     int64   `json:"model_id"`
	CustomModel *string `json:"custom_model,omitempty"`
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

// SearchRequest is the POST /product/search payload. Only "search" is always
// present; every other field is omitted when unset so the serialized payload
// doubles as a request de-duplication key.
type SearchRequest struct {
	Search     string `json:"search"`
	RegionID   int64  `json:"region_id,omitempty"`
	BrandID    int64  `json:"brand_id,omitempty"`
	ModelID    int64  `json:"model_id,omitempty"`
	ColorID    int64  `json:"color_id,omitempty"`
	PriceFrom  int64  `json:"price_from,omitempty"`
	PriceTo    int64  `json:"price_to,omitempty"`
	MemoryFrom int    `json:"memory_from,omitempty"`
	MemoryTo   int    `json:"memory_to,omitempty"`
	Top        bool   `json:"top,omitempty"`
}

type HomepageData struct {
	Products []Product `json:"products"`
	Brands   []Brand   `json:"brands"`
	Colors   []Color   `json:"colors,omitempty"`
	Regions  []Region  `json:"regions,omitempty"`
}
