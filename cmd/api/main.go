package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/database"
	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/routes"
	"github.com/01moynul/storefront-golang/internal/store"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	envErr := godotenv.Load()

	cfg := config.Load()
	zl, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if envErr != nil {
		zl.Warn("could not load .env file, relying on system environment variables")
	}
	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Main Database Connection ---
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	st := store.New(db)

	// 2. --- Bundled Catalog & Seeding ---
	data, err := catalog.LoadDataset()
	if err != nil {
		return err
	}
	if cfg.SeedOnStartup {
		if _, err := catalog.NewSeeder(st, data, zl).Seed(ctx); err != nil {
			// not fatal: listings fall back to the bundled dataset
			zl.Error("catalog seeding failed", zap.Error(err))
		}
	}

	// 3. --- Auth ---
	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
	if err != nil {
		return err
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.PublicCatalogWrites {
		zl.Warn("PUBLIC_CATALOG_WRITES is set: brand and shipping-zone admin routes are not guarded")
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Store:   st,
		Catalog: catalog.NewLister(st, data, zl),
		Auth:    auth.NewAuthenticator(st),
		Tokens:  tokens,
		Log:     zl,
		Config:  cfg,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.SetupRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start Server ---
	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting storefront API", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
