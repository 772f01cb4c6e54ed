package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phonomarket/phono/internal/client/api"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// MyAds lists the user's own listings.
func (a *App) MyAds(ctx context.Context) error {
	if a.profile.User() == nil {
		if err := a.profile.Load(ctx); err != nil {
			return err
		}
	}
	ads := a.profile.Ads()
	if len(ads) == 0 {
		printlnFn("You have no listings yet. Type 'sell' to create one.")
		return nil
	}
	for _, ad := range ads {
		printlnFn(formatAd(ad))
	}
	return nil
}

// Sell walks through creating a listing.
func (a *App) Sell(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}
	brandID, err := GetInt(a.reader, "Brand id", os.Stdout)
	if err != nil {
		return err
	}
	modelID, err := GetInt(a.reader, "Model id", os.Stdout)
	if err != nil {
		return err
	}
	year, err := GetInt(a.reader, "Year", os.Stdout)
	if err != nil {
		return err
	}
	colorID, err := GetInt(a.reader, "Color id", os.Stdout)
	if err != nil {
		return err
	}
	price, err := GetInt(a.reader, "Price", os.Stdout)
	if err != nil {
		return err
	}
	currencyID, err := GetInt(a.reader, "Currency id (1 for UZS, 2 for USD)", os.Stdout)
	if err != nil {
		return err
	}
	storage, err := GetInt(a.reader, "Storage (GB)", os.Stdout)
	if err != nil {
		return err
	}
	ram, err := GetInt(a.reader, "RAM (GB)", os.Stdout)
	if err != nil {
		return err
	}
	isNew, err := GetYesNo(a.reader, "Is the phone new?", os.Stdout)
	if err != nil {
		return err
	}
	hasDocument, err := GetYesNo(a.reader, "Do you have the documents?", os.Stdout)
	if err != nil {
		return err
	}
	floorPrice, err := GetYesNo(a.reader, "Is the price negotiable?", os.Stdout)
	if err != nil {
		return err
	}
	addressID, err := GetInt(a.reader, "Address id (see 'profile')", os.Stdout)
	if err != nil {
		return err
	}
	phoneID, err := GetInt(a.reader, "Contact phone id (see 'profile')", os.Stdout)
	if err != nil {
		return err
	}

	product, err := a.client.CreateProduct(ctx, api.ProductRequest{
		Title:       title,
		Description: description,
		Year:        int(year),
		BrandID:     brandID,
		ModelID:     modelID,
		ColorID:     colorID,
		Price:       price,
		FloorPrice:  floorPrice,
		CurrencyID:  currencyID,
		IsNew:       isNew,
		HasDocument: hasDocument,
		AddressID:   addressID,
		PhoneID:     phoneID,
		Storage:     int(storage),
		RAM:         int(ram),
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Listing #%d created. Upload photos with: upload %d <file>", product.ID, product.ID))
	return a.profile.Load(ctx)
}

// Archive marks a listing as no longer visible, asking whether it sold.
func (a *App) Archive(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	sold, err := GetYesNo(a.reader, "Did the phone sell?", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.client.ArchiveProduct(ctx, productID, sold); err != nil {
		return err
	}
	printlnFn("Listing archived.")
	return nil
}

func (a *App) Unarchive(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := a.client.UnarchiveProduct(ctx, productID); err != nil {
		return err
	}
	printlnFn("Listing restored.")
	return nil
}

// Upgrade promotes a listing to the top of search results.
func (a *App) Upgrade(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := a.client.UpgradeProduct(ctx, productID); err != nil {
		return err
	}
	printlnFn("Listing promoted.")
	return nil
}

// Upload attaches a photo to a listing. The first uploaded photo becomes the
// main one.
func (a *App) Upload(ctx context.Context, id, path string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	data, err := readFile(path)
	if err != nil {
		return err
	}
	isMain, err := GetYesNo(a.reader, "Use as the main photo?", os.Stdout)
	if err != nil {
		return err
	}
	img, err := a.client.UploadProductImage(ctx, productID, isMain, filepath.Base(path), data)
	if err != nil {
		return err
	}
	printlnFn("Uploaded: " + img.URL)
	return nil
}
