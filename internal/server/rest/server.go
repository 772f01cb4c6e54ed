// Package rest exposes the phono API over HTTP. Handlers decode requests,
// call into the service layer and encode responses; no business logic lives
// here.
package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phonomarket/phono/internal/logging"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/products"
	"github.com/phonomarket/phono/internal/server/services"
)

// The handlers depend on narrow views of the service layer so tests can swap
// in fakes.

type AuthService interface {
	Register(ctx context.Context, phone, password, name, surname string) (*services.RegistrationChallenge, error)
	VerifyOTP(ctx context.Context, uuid, code string) (*services.TokenPair, error)
	Login(ctx context.Context, phone, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	UserIDFromToken(token string) (int64, error)
}

type ProfileService interface {
	Me(ctx context.Context, userID int64) (*services.ProfileData, error)
	Update(ctx context.Context, userID int64, name, surname, dob, avatar *string) (*models.User, error)
	ChangeLanguage(ctx context.Context, userID int64, language string) error
	DeleteAccount(ctx context.Context, userID int64) error
	AddPhone(ctx context.Context, userID int64, phone string) (*models.Phone, error)
	DeletePhone(ctx context.Context, userID, id int64) error
	AddEmail(ctx context.Context, userID int64, email string) (*models.Email, error)
	EditEmail(ctx context.Context, userID, id int64, email string) (*models.Email, error)
	DeleteEmail(ctx context.Context, userID, id int64) error
	AddAddress(ctx context.Context, addr *models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, id int64) error
}

type ProductService interface {
	Get(ctx context.Context, id int64) (*services.ProductDetails, error)
	Latest(ctx context.Context, limit int) ([]services.ProductDetails, error)
	ByBrand(ctx context.Context, brandID int64) ([]services.ProductDetails, error)
	ByModel(ctx context.Context, modelID int64) ([]services.ProductDetails, error)
	Search(ctx context.Context, f products.SearchFilter) ([]services.ProductDetails, error)
	Create(ctx context.Context, p *models.Product) (*services.ProductDetails, error)
	Update(ctx context.Context, p *models.Product) (*services.ProductDetails, error)
	Archive(ctx context.Context, userID, id int64, sold bool) error
	Unarchive(ctx context.Context, userID, id int64) error
	Upgrade(ctx context.Context, userID, id int64) error
	Home(ctx context.Context) (*services.HomeData, error)
}

type FavouriteService interface {
	List(ctx context.Context, userID int64) ([]services.ProductDetails, error)
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) error
}

type CommentService interface {
	ByProduct(ctx context.Context, productID int64) ([]models.CommentWithAuthor, error)
	Add(ctx context.Context, userID, productID int64, text string) (*models.CommentWithAuthor, error)
	Update(ctx context.Context, userID, id int64, text string) (*models.CommentWithAuthor, error)
	Delete(ctx context.Context, userID, id int64) error
}

type ImageService interface {
	Upload(ctx context.Context, userID, productID int64, isMain bool, fileName string, data []byte) (*models.ProductImage, error)
	Delete(ctx context.Context, userID, id int64) error
	SetMain(ctx context.Context, userID, id int64) error
}

type Server struct {
	logger     logging.Logger
	auth       AuthService
	profile    ProfileService
	products   ProductService
	favourites FavouriteService
	comments   CommentService
	images     ImageService
}

func NewServer(logger logging.Logger, auth AuthService, profile ProfileService,
	products ProductService, favourites FavouriteService, comments CommentService,
	images ImageService) *Server {
	return &Server{
		logger:     logger,
		auth:       auth,
		profile:    profile,
		products:   products,
		favourites: favourites,
		comments:   comments,
		images:     images,
	}
}

// Routes builds the HTTP handler. Catalog browsing and search are public;
// everything touching an account requires a bearer token.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/verify-otp", s.handleVerifyOTP)
	r.Post("/auth/refresh-token", s.handleRefreshToken)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	r.Get("/web", s.handleHome)
	r.Get("/product", s.handleProducts)
	r.Get("/product/{id}", s.handleProduct)
	r.Get("/product/brand/{id}", s.handleProductsByBrand)
	r.Get("/product/model/{id}", s.handleProductsByModel)
	r.Post("/product/search", s.handleSearch)
	r.Get("/comment/product/{id}", s.handleCommentsByProduct)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/user/me", s.handleMe)
		r.Patch("/user/profile", s.handleUpdateProfile)
		r.Patch("/user/language", s.handleChangeLanguage)
		r.Delete("/user/account", s.handleDeleteAccount)

		r.Post("/phone", s.handleAddPhone)
		r.Delete("/phone/{id}", s.handleDeletePhone)
		r.Post("/email", s.handleAddEmail)
		r.Patch("/email/{id}", s.handleEditEmail)
		r.Delete("/email/{id}", s.handleDeleteEmail)
		r.Post("/address", s.handleAddAddress)
		r.Delete("/address/{id}", s.handleDeleteAddress)

		r.Post("/product", s.handleCreateProduct)
		r.Patch("/product/{id}", s.handleUpdateProduct)
		r.Patch("/product/archive/{id}", s.handleArchiveProduct)
		r.Patch("/product/unarchive/{id}", s.handleUnarchiveProduct)
		r.Patch("/product/upgrade/{id}", s.handleUpgradeProduct)

		r.Get("/favourite-item", s.handleFavourites)
		r.Post("/favourite-item", s.handleAddFavourite)
		r.Delete("/favourite-item/user/product/{id}", s.handleRemoveFavourite)

		r.Post("/comment", s.handleAddComment)
		r.Patch("/comment/{id}", s.handleUpdateComment)
		r.Delete("/comment/{id}", s.handleDeleteComment)

		r.Post("/product-image", s.handleUploadImage)
		r.Delete("/product-image/{id}", s.handleDeleteImage)
		r.Patch("/product-image/{id}/set-main", s.handleSetMainImage)
	})

	return r
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
