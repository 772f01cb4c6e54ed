// Package services implements the server's business logic on top of the
// repositories. Handlers stay thin; everything that spans more than one
// repository lives here.
package services

import (
	"github.com/phonomarket/phono/internal/server/models"
)

// ProductDetails is a listing joined with the reference data a client needs
// to render it. Address and ContactPhone are only filled in single-listing
// views.
type ProductDetails struct {
	Product      models.Product
	Images       []models.ProductImage
	Brand        *models.Brand
	Model        *models.PhoneModel
	Color        *models.Color
	Currency     *models.Currency
	Address      *models.Address
	ContactPhone *models.Phone
}

// FavouriteWithProduct is a bookmark joined with its listing.
type FavouriteWithProduct struct {
	Item    models.FavouriteItem
	Product *ProductDetails
}

// ProfileData is everything the profile screen shows, assembled in one shot.
type ProfileData struct {
	User       models.User
	Phones     []models.Phone
	Emails     []models.Email
	Addresses  []models.Address
	Favourites []FavouriteWithProduct
	Products   []ProductDetails
}

// HomeData feeds the landing page.
type HomeData struct {
	Products []ProductDetails
	Brands   []models.Brand
	Models   []models.PhoneModel
	Colors   []models.Color
	Regions  []models.Region
	Cities   []models.City
}
