// Package profile aggregates the user's profile payload into flat view-models
// and exposes mutation methods that patch local state optimistically, rolling
// back when the server rejects the change.
package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/phonomarket/phono/internal/client/api"
	"github.com/phonomarket/phono/internal/client/store"
)

// Client is the slice of the API client the aggregator needs. api.Client
// satisfies it.
type Client interface {
	Me(ctx context.Context) (*api.UserProfile, error)
	Product(ctx context.Context, id int64) (*api.Product, error)
	UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*api.UserProfile, error)
	ChangeLanguage(ctx context.Context, lang string) error
	DeleteAccount(ctx context.Context) error
	AddFavourite(ctx context.Context, productID int64) error
	RemoveFavourite(ctx context.Context, productID int64) error
	AddPhone(ctx context.Context, phone string) (*api.Phone, error)
	DeletePhone(ctx context.Context, id int64) error
	AddEmail(ctx context.Context, email string) (*api.Email, error)
	EditEmail(ctx context.Context, id int64, email string) (*api.Email, error)
	DeleteEmail(ctx context.Context, id int64) error
	AddAddress(ctx context.Context, req api.AddressRequest) (*api.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// ErrNotLoaded is returned by mutations invoked before a successful Load.
var ErrNotLoaded = errors.New("profile not loaded")

// Service holds the profile and its derived collections. All state is a
// disposable local copy: the server stays authoritative and the next Load
// overwrites everything.
type Service struct {
	client Client
	events *store.Store

	mu        sync.Mutex
	user      *api.UserProfile
	ads       []Ad
	favorites []Ad
}

func NewService(client Client, events *store.Store) *Service {
	return &Service{client: client, events: events}
}

// Load fetches the profile payload and fans it out into the listings and
// favorites view-models. Favourite items lacking an embedded product are
// resolved with one product fetch each, sequentially — a workaround for
// profile payloads that embed only favourite ids.
func (s *Service) Load(ctx context.Context) error {
	prof, err := s.client.Me(ctx)
	if err != nil {
		return err
	}

	favIDs := make(map[int64]bool, len(prof.FavouriteItems))
	for _, item := range prof.FavouriteItems {
		favIDs[item.ProductID] = true
	}

	ads := make([]Ad, 0, len(prof.Products))
	for _, p := range prof.Products {
		ads = append(ads, AdFromProduct(p, favIDs[p.ID]))
	}

	favorites := make([]Ad, 0, len(prof.FavouriteItems))
	for _, item := range prof.FavouriteItems {
		if item.Product != nil {
			favorites = append(favorites, AdFromProduct(*item.Product, true))
			continue
		}
		p, err := s.client.Product(ctx, item.ProductID)
		if err != nil {
			// One unresolvable favourite should not sink the whole profile.
			continue
		}
		favorites = append(favorites, AdFromProduct(*p, true))
	}

	s.mu.Lock()
	s.user = prof
	s.ads = ads
	s.favorites = favorites
	s.mu.Unlock()

	s.events.Publish(store.TopicAdsUpdated, len(ads))
	return nil
}

// User returns the loaded profile, or nil before Load.
func (s *Service) User() *api.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Ads returns the user's listings view-models.
func (s *Service) Ads() []Ad {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Ad(nil), s.ads...)
}

// Favorites returns the favourites view-models.
func (s *Service) Favorites() []Ad {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Ad(nil), s.favorites...)
}

// setFavoriteFlag flips the favourite flag on every view-model for productID
// and notifies subscribers.
func (s *Service) setFavoriteFlag(productID int64, fav bool) {
	s.mu.Lock()
	for i := range s.ads {
		if s.ads[i].ID == productID {
			s.ads[i].IsFavorite = fav
		}
	}
	for i := range s.favorites {
		if s.favorites[i].ID == productID {
			s.favorites[i].IsFavorite = fav
		}
	}
	s.mu.Unlock()

	s.events.Publish(store.TopicFavoritesChanged, productID)
}

// isFavorite reports the current visible favourite state of productID.
func (s *Service) isFavorite(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ad := range s.favorites {
		if ad.ID == productID && ad.IsFavorite {
			return true
		}
	}
	for _, ad := range s.ads {
		if ad.ID == productID && ad.IsFavorite {
			return true
		}
	}
	return false
}

// ToggleFavorite flips the favourite state optimistically. When the server
// rejects the toggle the visible state reverts to its pre-toggle value.
func (s *Service) ToggleFavorite(ctx context.Context, productID int64) error {
	was := s.isFavorite(productID)

	return Mutate(ctx,
		func() { s.setFavoriteFlag(productID, !was) },
		func() { s.setFavoriteFlag(productID, was) },
		func(ctx context.Context) error {
			if was {
				return s.client.RemoveFavourite(ctx, productID)
			}
			return s.client.AddFavourite(ctx, productID)
		},
	)
}

// UpdateInfo patches the profile fields and replaces the local copy with the
// server response. Not optimistic: the server derives display fields.
func (s *Service) UpdateInfo(ctx context.Context, upd api.ProfileUpdate) error {
	updated, err := s.client.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = updated
	s.mu.Unlock()
	return nil
}

// AddPhone appends a pending entry immediately, then swaps in the server
// record (with its id) once the call succeeds.
func (s *Service) AddPhone(ctx context.Context, phone string) error {
	s.mu.Lock()
	loaded := s.user != nil
	s.mu.Unlock()
	if !loaded {
		return ErrNotLoaded
	}

	return Mutate(ctx,
		func() {
			s.mu.Lock()
			s.user.AdditionalPhones = append(s.user.AdditionalPhones, api.Phone{Phone: phone})
			s.mu.Unlock()
		},
		func() {
			s.mu.Lock()
			s.user.AdditionalPhones = s.user.AdditionalPhones[:len(s.user.AdditionalPhones)-1]
			s.mu.Unlock()
		},
		func(ctx context.Context) error {
			created, err := s.client.AddPhone(ctx, phone)
			if err != nil {
				return err
			}
			s.mu.Lock()
			s.user.AdditionalPhones[len(s.user.AdditionalPhones)-1] = *created
			s.mu.Unlock()
			return nil
		},
	)
}

// DeletePhone removes the entry immediately and reinserts it on failure.
func (s *Service) DeletePhone(ctx context.Context, phoneID int64) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	idx := -1
	var removed api.Phone
	for i, p := range s.user.AdditionalPhones {
		if p.ID == phoneID {
			idx, removed = i, p
			break
		}
	}
	s.mu.Unlock()
	if idx < 0 {
		return ErrNotLoaded
	}

	return Mutate(ctx,
		func() {
			s.mu.Lock()
			s.user.AdditionalPhones = append(s.user.AdditionalPhones[:idx:idx], s.user.AdditionalPhones[idx+1:]...)
			s.mu.Unlock()
		},
		func() {
			s.mu.Lock()
			phones := s.user.AdditionalPhones
			phones = append(phones, api.Phone{})
			copy(phones[idx+1:], phones[idx:])
			phones[idx] = removed
			s.user.AdditionalPhones = phones
			s.mu.Unlock()
		},
		func(ctx context.Context) error {
			return s.client.DeletePhone(ctx, phoneID)
		},
	)
}

// AddEmail mirrors AddPhone for emails.
func (s *Service) AddEmail(ctx context.Context, email string) error {
	s.mu.Lock()
	loaded := s.user != nil
	s.mu.Unlock()
	if !loaded {
		return ErrNotLoaded
	}

	return Mutate(ctx,
		func() {
			s.mu.Lock()
			s.user.Emails = append(s.user.Emails, api.Email{Email: email})
			s.mu.Unlock()
		},
		func() {
			s.mu.Lock()
			s.user.Emails = s.user.Emails[:len(s.user.Emails)-1]
			s.mu.Unlock()
		},
		func(ctx context.Context) error {
			created, err := s.client.AddEmail(ctx, email)
			if err != nil {
				return err
			}
			s.mu.Lock()
			s.user.Emails[len(s.user.Emails)-1] = *created
			s.mu.Unlock()
			return nil
		},
	)
}

// EditEmail rewrites the address locally and restores the old value when the
// server rejects the change.
func (s *Service) EditEmail(ctx context.Context, emailID int64, email string) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	idx := -1
	var old api.Email
	for i, e := range s.user.Emails {
		if e.ID == emailID {
			idx, old = i, e
			break
		}
	}
	s.mu.Unlock()
	if idx < 0 {
		return ErrNotLoaded
	}

	return Mutate(ctx,
		func() {
			s.mu.Lock()
			s.user.Emails[idx].Email = email
			s.mu.Unlock()
		},
		func() {
			s.mu.Lock()
			s.user.Emails[idx] = old
			s.mu.Unlock()
		},
		func(ctx context.Context) error {
			updated, err := s.client.EditEmail(ctx, emailID, email)
			if err != nil {
				return err
			}
			s.mu.Lock()
			s.user.Emails[idx] = *updated
			s.mu.Unlock()
			return nil
		},
	)
}

// DeleteEmail mirrors DeletePhone.
func (s *Service) DeleteEmail(ctx context.Context, emailID int64) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	idx := -1
	var removed api.Email
	for i, e := range s.user.Emails {
		if e.ID == emailID {
			idx, removed = i, e
			break
		}
	}
	s.mu.Unlock()
	if idx < 0 {
		return ErrNotLoaded
	}

	return Mutate(ctx,
		func() {
			s.mu.Lock()
			s.user.Emails = append(s.user.Emails[:idx:idx], s.user.Emails[idx+1:]...)
			s.mu.Unlock()
		},
		func() {
			s.mu.Lock()
			emails := s.user.Emails
			emails = append(emails, api.Email{})
			copy(emails[idx+1:], emails[idx:])
			emails[idx] = removed
			s.user.Emails = emails
			s.mu.Unlock()
		},
		func(ctx context.Context) error {
			return s.client.DeleteEmail(ctx, emailID)
		},
	)
}

// AddAddress mirrors AddPhone for addresses.
func (s *Service) AddAddress(ctx context.Context, req api.AddressRequest) error {
	s.mu.Lock()
	loaded := s.user != nil
	s.mu.Unlock()
	if !loaded {
		return ErrNotLoaded
	}

	return Mutate(ctx,
		func() {
			s.mu.Lock()
			s.user.Addresses = append(s.user.Addresses, api.Address{
				Name: req.Name, Address: req.Address, Lat: req.Lat, Long: req.Long,
			})
			s.mu.Unlock()
		},
		func() {
			s.mu.Lock()
			s.user.Addresses = s.user.Addresses[:len(s.user.Addresses)-1]
			s.mu.Unlock()
		},
		func(ctx context.Context) error {
			created, err := s.client.AddAddress(ctx, req)
			if err != nil {
				return err
			}
			s.mu.Lock()
			s.user.Addresses[len(s.user.Addresses)-1] = *created
			s.mu.Unlock()
			return nil
		},
	)
}

// DeleteAddress mirrors DeletePhone.
func (s *Service) DeleteAddress(ctx context.Context, addressID int64) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	idx := -1
	var removed api.Address
	for i, a := range s.user.Addresses {
		if a.ID == addressID {
			idx, removed = i, a
			break
		}
	}
	s.mu.Unlock()
	if idx < 0 {
		return ErrNotLoaded
	}

	return Mutate(ctx,
		func() {
			s.mu.Lock()
			s.user.Addresses = append(s.user.Addresses[:idx:idx], s.user.Addresses[idx+1:]...)
			s.mu.Unlock()
		},
		func() {
			s.mu.Lock()
			addrs := s.user.Addresses
			addrs = append(addrs, api.Address{})
			copy(addrs[idx+1:], addrs[idx:])
			addrs[idx] = removed
			s.user.Addresses = addrs
			s.mu.Unlock()
		},
		func(ctx context.Context) error {
			return s.client.DeleteAddress(ctx, addressID)
		},
	)
}

// ChangeLanguage updates the interface language server-side, then locally.
func (s *Service) ChangeLanguage(ctx context.Context, lang string) error {
	if err := s.client.ChangeLanguage(ctx, lang); err != nil {
		return err
	}
	s.mu.Lock()
	if s.user != nil {
		s.user.Language = lang
	}
	s.mu.Unlock()
	return nil
}

// DeleteAccount removes the account server-side and drops local state.
func (s *Service) DeleteAccount(ctx context.Context) error {
	if err := s.client.DeleteAccount(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.ads = nil
	s.favorites = nil
	s.mu.Unlock()
	return nil
}
