// Package repomanager vends repository implementations bound to a DBTX and
// owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/phonomarket/phono/internal/dbx"
	"github.com/phonomarket/phono/internal/server/repositories/catalog"
	"github.com/phonomarket/phono/internal/server/repositories/comments"
	"github.com/phonomarket/phono/internal/server/repositories/contacts"
	"github.com/phonomarket/phono/internal/server/repositories/favourites"
	"github.com/phonomarket/phono/internal/server/repositories/products"
	"github.com/phonomarket/phono/internal/server/repositories/refreshtokens"
	"github.com/phonomarket/phono/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Catalog(db dbx.DBTX) catalog.Repository
	Products(db dbx.DBTX) products.Repository
	Favourites(db dbx.DBTX) favourites.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Comments(db dbx.DBTX) comments.Repository
}
