package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"streamhaven/api"
	"streamhaven/config"
	"streamhaven/internal/auth"
	"streamhaven/internal/storage"
	"streamhaven/services/browse"
	"streamhaven/services/catalog"
	"streamhaven/services/history"
	"streamhaven/services/reviews"
	"streamhaven/services/theme"
	"streamhaven/services/users"
	"streamhaven/services/watchlist"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("[server] %v", err)
	}
	setupLogging(cfg.LogFile)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("[server] open storage: %v", err)
	}
	defer store.Close()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("[server] token manager: %v", err)
	}

	ctx := context.Background()
	client := catalog.NewClient(catalog.Config{
		APIKey:   cfg.CatalogAPIKey,
		Language: cfg.Language,
		BaseURL:  cfg.CatalogBaseURL,
	})

	watchlistSvc, err := watchlist.NewService(ctx, store)
	if err != nil {
		log.Fatalf("[server] watchlist service: %v", err)
	}
	historySvc, err := history.NewService(ctx, store, history.Options{})
	if err != nil {
		log.Fatalf("[server] history service: %v", err)
	}
	tracker := history.NewTracker(historySvc, 0)
	defer tracker.Stop()
	reviewsSvc, err := reviews.NewService(store)
	if err != nil {
		log.Fatalf("[server] reviews service: %v", err)
	}
	usersSvc, err := users.NewService(store)
	if err != nil {
		log.Fatalf("[server] users service: %v", err)
	}
	themeSvc, err := theme.NewService(ctx, store)
	if err != nil {
		log.Fatalf("[server] theme service: %v", err)
	}
	controller := browse.NewController(client, watchlistSvc)

	// 5 auth attempts per minute per IP.
	loginLimiter := api.NewIPRateLimiter(rate.Every(12*time.Second), 5)

	router := buildRouter(deps{
		catalog:      client,
		controller:   controller,
		watchlist:    watchlistSvc,
		history:      historySvc,
		tracker:      tracker,
		reviews:      reviewsSvc,
		users:        usersSvc,
		theme:        themeSvc,
		tokens:       tokens,
		loginLimiter: loginLimiter,
		extraOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[server] listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	switch cfg.StorageBackend {
	case "file":
		return storage.OpenDir(filepath.Join(cfg.DataDir, "state"))
	default:
		return storage.OpenSQLite(filepath.Join(cfg.DataDir, "streamhaven.db"))
	}
}

// setupLogging routes the standard logger through a rotating file when one is
// configured, mirroring output to stderr.
func setupLogging(logFile string) {
	if logFile == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}
