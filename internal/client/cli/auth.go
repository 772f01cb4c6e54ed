package cli

import (
	"context"
	"os"

	"github.com/phonomarket/phono/internal/client/api"
	"github.com/phonomarket/phono/internal/phonex"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register walks the two-step signup: submit phone, name and password, then
// confirm the one-time code sent to the phone. On success the returned access
// token is stored in the session and the profile is loaded.
func (a *App) Register(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	surname, err := getSimpleText(a.reader, "Enter surname", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	reg, err := a.client.Register(ctx, api.RegisterRequest{
		Phone:    phonex.Normalize(phone),
		Password: string(password),
		Name:     name,
		Surname:  surname,
	})
	if err != nil {
		return err
	}

	otp, err := getSimpleText(a.reader, "Enter the code sent to your phone", os.Stdout)
	if err != nil {
		return err
	}

	tok, err := a.client.VerifyOTP(ctx, api.VerifyOTPRequest{
		OTP:    otp,
		UUID:   reg.UUID,
		Phone:  reg.Phone,
		Expire: reg.Expire,
	})
	if err != nil {
		return err
	}

	if err := a.session.SetTokens(ctx, tok.AccessToken, tok.RefreshToken); err != nil {
		return err
	}
	printlnFn("Welcome to phono!")
	return a.profile.Load(ctx)
}

// Login authenticates with phone and password and loads the profile.
func (a *App) Login(ctx context.Context) error {
	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	tok, err := a.client.Login(ctx, api.LoginRequest{
		Phone:    phonex.Normalize(phone),
		Password: string(password),
	})
	if err != nil {
		return err
	}

	if err := a.session.SetTokens(ctx, tok.AccessToken, tok.RefreshToken); err != nil {
		return err
	}
	printlnFn("Logged in.")
	return a.profile.Load(ctx)
}

// Logout drops the session. The server call is best effort; the local token
// is cleared regardless.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		printlnFn("Server logout failed:", err.Error())
	}
	return a.session.Clear(ctx)
}
