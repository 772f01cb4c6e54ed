package cli

import (
	"context"
	"os"

	"github.com/phonomarket/phono/internal/client/api"
)

// AddPhone prompts for an extra phone number and attaches it to the profile.
// The number appears in the profile immediately; on failure it is removed
// again by the profile service.
func (a *App) AddPhone(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}
	return a.profile.AddPhone(ctx, phone)
}

func (a *App) DeletePhone(ctx context.Context, id string) error {
	phoneID, err := parseID(id)
	if err != nil {
		return err
	}
	return a.profile.DeletePhone(ctx, phoneID)
}

func (a *App) AddEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	return a.profile.AddEmail(ctx, email)
}

func (a *App) EditEmail(ctx context.Context, id string) error {
	emailID, err := parseID(id)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter new email", os.Stdout)
	if err != nil {
		return err
	}
	return a.profile.EditEmail(ctx, emailID, email)
}

func (a *App) DeleteEmail(ctx context.Context, id string) error {
	emailID, err := parseID(id)
	if err != nil {
		return err
	}
	return a.profile.DeleteEmail(ctx, emailID)
}

func (a *App) AddAddress(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Address label (e.g. Home)", os.Stdout)
	if err != nil {
		return err
	}
	addr, err := getSimpleText(a.reader, "Street address", os.Stdout)
	if err != nil {
		return err
	}
	return a.profile.AddAddress(ctx, api.AddressRequest{Name: name, Address: addr})
}

func (a *App) DeleteAddress(ctx context.Context, id string) error {
	addressID, err := parseID(id)
	if err != nil {
		return err
	}
	return a.profile.DeleteAddress(ctx, addressID)
}
