package cli

import "context"

// Favorites prints the favourites list with current prices.
func (a *App) Favorites(ctx context.Context) error {
	if a.profile.User() == nil {
		if err := a.profile.Load(ctx); err != nil {
			return err
		}
	}
	favs := a.profile.Favorites()
	if len(favs) == 0 {
		printlnFn("No favourites yet.")
		return nil
	}
	for _, ad := range favs {
		printlnFn(formatAd(ad))
	}
	return nil
}

// ToggleFav flips the favourite flag for a product. The change shows up
// immediately and is reverted if the server rejects it.
func (a *App) ToggleFav(ctx context.Context, id string) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}
	return a.profile.ToggleFavorite(ctx, productID)
}
