package cli

import (
	"context"
	"fmt"

	"github.com/phonomarket/phono/internal/client/profile"
	"github.com/phonomarket/phono/internal/client/search"
)

// Search sets the search text and performs the query.
func (a *App) Search(ctx context.Context, terms string) error {
	a.search.Update(func(f *search.FilterState) {
		f.Search = terms
	})
	return a.perform(ctx)
}

// Filter sets one facet and performs the query.
func (a *App) Filter(ctx context.Context, facet, value string) error {
	var unknown bool
	a.search.Update(func(f *search.FilterState) {
		switch facet {
		case "brand":
			f.SetBrand(value)
		case "model":
			f.Model = value
		case "region":
			f.Region = value
		case "color":
			f.Color = value
		case "memory":
			f.Memory = value
		case "price_from":
			f.PriceFrom = value
		case "price_to":
			f.PriceTo = value
		case "condition":
			f.Condition = search.Condition(value)
		case "top":
			f.TopOnly = value == "true" || value == "1"
		default:
			unknown = true
		}
	})
	if unknown {
		printlnFn("Unknown facet:", facet)
		return nil
	}
	return a.perform(ctx)
}

// ResetFilters clears the filter state, the result set and the share URL.
func (a *App) ResetFilters(ctx context.Context) error {
	a.search.Reset()
	printlnFn("Filters cleared.")
	return nil
}

// Results prints the current result set.
func (a *App) Results(ctx context.Context) error {
	a.printResults()
	return nil
}

func (a *App) perform(ctx context.Context) error {
	issued, err := a.search.Perform(ctx)
	if err != nil {
		printlnFn(a.search.ErrMessage())
		return nil
	}
	if !issued {
		return nil
	}
	a.printResults()
	return nil
}

func (a *App) printResults() {
	results := a.search.Results()
	if len(results) == 0 {
		printlnFn("No results.")
		return
	}
	for _, p := range results {
		ad := profile.AdFromProduct(p, false)
		printlnFn(formatAd(ad))
	}
	if a.shareURL != "" {
		printlnFn("Share this search: ?" + a.shareURL)
	}
}

func formatAd(ad profile.Ad) string {
	line := fmt.Sprintf("#%d %s: %d %s (%s", ad.ID, ad.Title, ad.Price, ad.Currency, ad.Condition)
	if ad.Memory != "" {
		line += ", " + ad.Memory
	}
	line += ")"
	for _, tag := range ad.Tags {
		line += " [" + tag + "]"
	}
	if ad.IsFavorite {
		line += " ★"
	}
	return line
}
