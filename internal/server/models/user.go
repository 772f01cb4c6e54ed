// Package models defines the database-facing entities shared by the server's
// repositories and services.
package models

import "time"

type User struct {
	ID           int64
	Phone        string
	PasswordHash string
	Name         string
	Surname      string
	Avatar       *string
	Balance      int64
	CurrencyID   int64
	IsActive     bool
	DOB          *string
	Language     string
}

// RefreshToken is an opaque long-lived credential exchanged for a fresh
// access token. Rows are rotated on every use.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
}
