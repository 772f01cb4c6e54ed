// Package server initializes and runs the phono API server: it connects to
// the database, applies migrations, wires the service layer and serves HTTP
// until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phonomarket/phono/internal/logging"
	"github.com/phonomarket/phono/internal/server/auth"
	"github.com/phonomarket/phono/internal/server/config"
	"github.com/phonomarket/phono/internal/server/repositories/repomanager"
	"github.com/phonomarket/phono/internal/server/rest"
	"github.com/phonomarket/phono/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rest   *rest.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	var logger logging.Logger
	if cfg.Dev {
		logger = logging.NewDevLogger(os.Stdout, slog.LevelDebug)
	} else {
		logger = logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	otp := auth.NewOTPStore(cfg.OTPValidityDuration)

	authService := services.NewAuthService(db, manager, otp, logger, cfg)
	productService := services.NewProductService(db, manager)
	profileService := services.NewProfileService(db, manager, productService)
	favouriteService := services.NewFavouriteService(db, manager, productService)
	commentService := services.NewCommentService(db, manager)
	imageService := services.NewImageService(db, manager, cfg)

	restServer := rest.NewServer(logger, authService, profileService,
		productService, favouriteService, commentService, imageService)

	return &App{config: cfg, logger: logger, db: db, rest: restServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.rest.Routes(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}
}
