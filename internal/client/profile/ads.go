package profile

import (
	"fmt"

	"github.com/phonomarket/phono/internal/client/api"
)

// PlaceholderImage is shown for listings without any uploaded image.
const PlaceholderImage = "/images/placeholder-phone.jpg"

// Ad is the flat view-model derived from a Product for list rendering.
// It is recomputed on every fetch and never persisted.
type Ad struct {
	ID         int64
	Title      string
	ImageURL   string
	Condition  string
	Memory     string
	Price      int64
	Currency   string
	IsFavorite bool
	Tags       []string
}

// AdFromProduct projects a product into an Ad. The image is the one flagged
// is_main, else the first one, else the placeholder. Currency id 1 is the
// local currency; everything else renders as USD.
func AdFromProduct(p api.Product, isFavorite bool) Ad {
	imageURL := p.MainImageURL()
	if imageURL == "" {
		imageURL = PlaceholderImage
	}

	condition := "used"
	if p.IsNew {
		condition = "new"
	}

	currency := "USD"
	if p.CurrencyID == 1 {
		currency = "UZS"
	}

	var tags []string
	if p.FloorPrice {
		tags = append(tags, "negotiable")
	}

	return Ad{
		ID:         p.ID,
		Title:      p.Title,
		ImageURL:   imageURL,
		Condition:  condition,
		Memory:     fmt.Sprintf("%d GB", p.Storage),
		Price:      p.Price,
		Currency:   currency,
		IsFavorite: isFavorite,
		Tags:       tags,
	}
}
