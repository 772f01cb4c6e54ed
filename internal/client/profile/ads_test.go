package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phonomarket/phono/internal/client/api"
)

func TestAdFromProduct(t *testing.T) {
	p := api.Product{
		ID:         10,
		Title:      "iPhone 13",
		Price:      700,
		CurrencyID: 2,
		Storage:    128,
		IsNew:      true,
		FloorPrice: true,
		Images: []api.ProductImage{
			{URL: "side.jpg"},
			{URL: "front.jpg", IsMain: true},
		},
	}

	ad := AdFromProduct(p, true)
	assert.Equal(t, int64(10), ad.ID)
	assert.Equal(t, "front.jpg", ad.ImageURL)
	assert.Equal(t, "new", ad.Condition)
	assert.Equal(t, "128 GB", ad.Memory)
	assert.Equal(t, "USD", ad.Currency)
	assert.True(t, ad.IsFavorite)
	assert.Equal(t, []string{"negotiable"}, ad.Tags)
}

func TestAdFromProduct_Defaults(t *testing.T) {
	ad := AdFromProduct(api.Product{ID: 1, CurrencyID: 1, Storage: 64}, false)
	assert.Equal(t, PlaceholderImage, ad.ImageURL)
	assert.Equal(t, "used", ad.Condition)
	assert.Equal(t, "UZS", ad.Currency)
	assert.Empty(t, ad.Tags)
}

func TestAdFromProduct_FirstImageWhenNoMain(t *testing.T) {
	p := api.Product{Images: []api.ProductImage{{URL: "a.jpg"}, {URL: "b.jpg"}}}
	assert.Equal(t, "a.jpg", AdFromProduct(p, false).ImageURL)
}
