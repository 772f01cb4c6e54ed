package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/phonomarket/phono/internal/client/api"
)

// Profile prints the loaded profile: identity, balance, contact details.
func (a *App) Profile(ctx context.Context) error {
	if a.profile.User() == nil {
		if err := a.profile.Load(ctx); err != nil {
			return err
		}
	}
	u := a.profile.User()

	printlnFn(fmt.Sprintf("%s %s (%s)", u.Name, u.Surname, u.Phone))
	printlnFn(fmt.Sprintf("Balance: %d", u.Balance))
	if u.Language != "" {
		printlnFn("Language: " + u.Language)
	}
	for _, p := range u.AdditionalPhones {
		printlnFn(fmt.Sprintf("Phone #%d: %s", p.ID, p.Phone))
	}
	for _, e := range u.Emails {
		printlnFn(fmt.Sprintf("Email #%d: %s", e.ID, e.Email))
	}
	for _, addr := range u.Addresses {
		printlnFn(fmt.Sprintf("Address #%d: %s, %s", addr.ID, addr.Name, addr.Address))
	}
	return nil
}

// UpdateInfo prompts for new name/surname/birth date. Empty answers leave the
// field unchanged.
func (a *App) UpdateInfo(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	surname, err := getSimpleText(a.reader, "Surname (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	dob, err := getSimpleText(a.reader, "Date of birth YYYY-MM-DD (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var upd api.ProfileUpdate
	if name != "" {
		upd.Name = &name
	}
	if surname != "" {
		upd.Surname = &surname
	}
	if dob != "" {
		upd.DOB = &dob
	}

	if err := a.profile.UpdateInfo(ctx, upd); err != nil {
		return err
	}
	printlnFn("Profile updated.")
	return nil
}

func (a *App) Language(ctx context.Context, lang string) error {
	if err := a.profile.ChangeLanguage(ctx, lang); err != nil {
		return err
	}
	printlnFn("Language set to " + lang)
	return nil
}

// DeleteAccount asks for confirmation, deletes the account on the server and
// drops the local session.
func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := GetYesNo(a.reader, "Delete your account? This cannot be undone", os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := a.profile.DeleteAccount(ctx); err != nil {
		return err
	}
	printlnFn("Account deleted.")
	return a.session.Clear(ctx)
}
