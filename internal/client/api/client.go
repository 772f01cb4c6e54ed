// Package api implements the typed HTTP client for the phono REST API.
//
// Every method issues exactly one request and returns a parsed JSON body.
// Errors carry the server-provided message verbatim when one exists and the
// generic "network error occurred" otherwise. There are no retries and no
// backoff; failures are surfaced to the caller, who decides whether to
// re-trigger the action.
package api

import "context"

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the full API surface consumed by the application services.
type Client interface {
	// Auth.
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context) error

	// Profile.
	Me(ctx context.Context) (*UserProfile, error)
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (*UserProfile, error)
	ChangeLanguage(ctx context.Context, lang string) error
	DeleteAccount(ctx context.Context) error

	// Contact details.
	AddPhone(ctx context.Context, phone string) (*Phone, error)
	DeletePhone(ctx context.Context, id int64) error
	AddEmail(ctx context.Context, email string) (*Email, error)
	EditEmail(ctx context.Context, id int64, email string) (*Email, error)
	DeleteEmail(ctx context.Context, id int64) error
	AddAddress(ctx context.Context, req AddressRequest) (*Address, error)
	DeleteAddress(ctx context.Context, id int64) error

	// Products.
	Products(ctx context.Context, limit int) ([]Product, error)
	Product(ctx context.Context, id int64) (*Product, error)
	ProductsByBrand(ctx context.Context, brandID int64) ([]Product, error)
	ProductsByModel(ctx context.Context, modelID int64) ([]Product, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error)
	ArchiveProduct(ctx context.Context, id int64, isSold bool) error
	UnarchiveProduct(ctx context.Context, id int64) error
	UpgradeProduct(ctx context.Context, id int64) error
	Search(ctx context.Context, req SearchRequest) ([]Product, error)

	// Favourites.
	Favourites(ctx context.Context) ([]Product, error)
	AddFavourite(ctx context.Context, productID int64) error
	RemoveFavourite(ctx context.Context, productID int64) error

	// Comments.
	CommentsByProduct(ctx context.Context, productID int64) ([]Comment, error)
	AddComment(ctx context.Context, productID int64, text string) (*Comment, error)
	UpdateComment(ctx context.Context, id int64, text string) (*Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	// Images.
	UploadProductImage(ctx context.Context, productID int64, isMain bool, fileName string, data []byte) (*ProductImage, error)
	DeleteProductImage(ctx context.Context, id int64) error
	SetMainProductImage(ctx context.Context, id int64) error

	// Homepage catalog.
	Home(ctx context.Context) (*HomepageData, error)
}
