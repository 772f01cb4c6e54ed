package models

import "time"

type Product struct {
	ID            int64
	UserID        int64
	Title         string
	Description   string
	Year          int
	BrandID       int64
	ModelID       int64
	CustomModel   *string
	ColorID       int64
	Price         int64
	FloorPrice    bool
	CurrencyID    int64
	IsNew         bool
	HasDocument   bool
	AddressID     int64
	PhoneID       int64
	Storage       int
	RAM           int
	Views         int64
	IsArchived    bool
	IsSold        bool
	IsChecked     bool
	TopExpireDate *time.Time
	CreatedAt     time.Time
}

type ProductImage struct {
	ID        int64
	ProductID int64
	URL       string
	IsMain    bool
}

type FavouriteItem struct {
	ID        int64
	UserID    int64
	ProductID int64
}
