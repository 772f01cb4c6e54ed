// Package migrations holds the embedded goose migrations for the server
// database schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
