package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/phonomarket/phono/internal/client/api"
	"github.com/phonomarket/phono/internal/client/config"
	"github.com/phonomarket/phono/internal/client/localdb"
	"github.com/phonomarket/phono/internal/client/profile"
	"github.com/phonomarket/phono/internal/client/repositories/metadata"
	"github.com/phonomarket/phono/internal/client/search"
	"github.com/phonomarket/phono/internal/client/session"
	"github.com/phonomarket/phono/internal/client/store"
	"github.com/phonomarket/phono/internal/filex"
)

type App struct {
	config  *config.Config
	client  api.Client
	session *session.Session
	profile *profile.Service
	search  *search.Reconciler
	events  *store.Store
	db      *sql.DB
	reader  *bufio.Reader

	// shareURL holds the query string of the last issued search, suitable
	// for sharing. Updated by the reconciler's URL hook.
	shareURL string

	// Prompt counters, kept in step with the profile aggregator through the
	// event store. Updated on the publishing goroutine.
	adsCount int
	favCount int
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("preparing data dir: %w", err)
	}

	db, err := localdb.Open(ctx, filepath.Join(dir, "phono.db"))
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	sess := session.New(metadata.NewSQLiteRepository(db))
	if err := sess.Restore(ctx); err != nil {
		db.Close()
		return nil, err
	}

	client := api.NewHTTPClient(c.BaseURL, sess, c.RequestTimeout)
	events := store.New()

	a := &App{
		config:  c,
		client:  client,
		session: sess,
		profile: profile.NewService(client, events),
		search:  search.NewReconciler(client),
		events:  events,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}
	a.search.URLFunc = func(v url.Values) {
		a.shareURL = v.Encode()
	}
	a.subscribeEvents()
	return a, nil
}

// subscribeEvents wires the prompt counters to the aggregator's topics.
func (a *App) subscribeEvents() {
	a.events.Subscribe(store.TopicAdsUpdated, func(any) { a.refreshCounts() })
	a.events.Subscribe(store.TopicFavoritesChanged, func(any) { a.refreshCounts() })
}

// refreshCounts re-reads the aggregator's collections after a publish.
func (a *App) refreshCounts() {
	a.adsCount = len(a.profile.Ads())
	a.favCount = len(a.profile.Favorites())
}

// loadProfile fetches the profile, renewing the access token once when the
// stored one has gone stale. A failed renewal drops the session so the next
// prompt asks for a login instead of looping on 401s.
func (a *App) loadProfile(ctx context.Context) error {
	err := a.profile.Load(ctx)
	if err == nil || !errors.Is(err, api.ErrUnauthorized) {
		return err
	}

	refresh := a.session.RefreshToken()
	if refresh == "" {
		return err
	}

	tok, rerr := a.client.RefreshToken(ctx, refresh)
	if rerr != nil {
		_ = a.session.Clear(ctx)
		return err
	}
	if serr := a.session.SetTokens(ctx, tok.AccessToken, tok.RefreshToken); serr != nil {
		return serr
	}
	return a.profile.Load(ctx)
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if a.session.LoggedIn() {
		if err := a.loadProfile(ctx); err != nil {
			printlnFn("Could not load profile:", err.Error())
		}
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) getStatus() string {
	if u := a.profile.User(); u != nil {
		return fmt.Sprintf("(%s, %d ads, %d saved)", u.Name, a.adsCount, a.favCount)
	}
	if a.isLoggedIn() {
		return "(logged in)"
	}
	return ""
}

// parseID converts a command argument into a numeric id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
