package cli

import (
	"context"
	"fmt"

	"github.com/phonomarket/phono/internal/client/profile"
)

// Home prints the homepage: fresh products and the brand list.
func (a *App) Home(ctx context.Context) error {
	data, err := a.client.Home(ctx)
	if err != nil {
		return err
	}

	printlnFn("Brands:")
	for _, b := range data.Brands {
		printlnFn(fmt.Sprintf("  #%d %s", b.ID, b.Name))
	}
	printlnFn("Latest listings:")
	for _, p := range data.Products {
		printlnFn("  " + formatAd(profile.AdFromProduct(p, false)))
	}
	return nil
}
