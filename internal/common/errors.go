// Package common defines shared constants and sentinel errors used across
// client and server layers of phono. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Transport-level failure with no server response. The message is part of
	// the client contract and is surfaced to the user verbatim.
	ErrorNetwork = errors.New("network error occurred")

	// Validation errors (blocked before any request is sent).
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrOTPExpired     = errors.New("verification code expired")
	ErrOTPMismatch    = errors.New("invalid verification code")
	ErrorPhoneTaken   = errors.New("phone already registered")
	ErrorWrongLogin   = errors.New("invalid phone/password")

	// Favourites. The server returns this literal message on duplicate adds;
	// the client treats it as success.
	ErrAlreadyInFavourites = errors.New("already in favourites")
)
