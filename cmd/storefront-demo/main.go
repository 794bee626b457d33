package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api"
	"github.com/aaravmahajanofficial/storefront-demo/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/cache"
	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	"github.com/aaravmahajanofficial/storefront-demo/internal/health"
	"github.com/aaravmahajanofficial/storefront-demo/internal/photos"
	repository "github.com/aaravmahajanofficial/storefront-demo/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-demo/internal/services"
	"github.com/aaravmahajanofficial/storefront-demo/internal/session"
	"github.com/aaravmahajanofficial/storefront-demo/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

const (
	sessionSweepInterval = time.Minute
	limiterSweepInterval = time.Minute
)

func main() {

	// Load config
	cfg := config.MustLoad()

	// Logger setup
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("❌ Server stopped with an error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.DataPath != "" {
		return catalog.Load(cfg.Catalog.DataPath)
	}

	return catalog.Seed()
}

func run(ctx context.Context, cfg *config.Config) error {

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	products, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("Catalog loaded", slog.Int("products", products.Len()))

	// Redis setup
	var (
		redisClient *redis.Client
		appCache    cache.Cache
	)
	if cfg.UsesRedis() {
		redisClient, err = repository.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		appCache = cache.NewRedisCache(redisClient, &cfg.Cache)
		defer func() {
			if err := appCache.Close(); err != nil {
				slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
			}
		}()
	}

	// Session storage
	var sessionRepo session.Repository
	switch cfg.Session.Backend {
	case "redis":
		sessionRepo = session.NewRedisRepository(appCache)
	default:
		memoryRepo := session.NewMemoryRepository()
		go memoryRepo.RunSweeper(ctx, sessionSweepInterval)
		sessionRepo = memoryRepo
	}
	sessions := session.NewManager(sessionRepo, cfg.Session.TTL)

	// Accounts
	var users repository.UserRepository
	switch cfg.Auth.Backend {
	case "postgres":
		db, err := repository.NewPostgres(ctx, cfg)
		if err != nil {
			return fmt.Errorf("error accessing the database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Database connection closed")
			}
		}()

		if err := repository.EnsureSchema(ctx, db); err != nil {
			return err
		}
		users = repository.NewUserRepo(db)
	default:
		users = repository.NewMemoryUserRepo()
	}

	var limiter repository.RateLimitRepository
	if redisClient != nil {
		limiter = repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	} else {
		memoryLimiter := repository.NewMemoryRateLimitRepo(cfg.RateConfig)
		go memoryLimiter.RunSweeper(ctx, limiterSweepInterval)
		limiter = memoryLimiter
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	jwtExpiry := time.Duration(cfg.Security.JWTExpiryHours) * time.Hour
	encoder := photos.NewEncoder(photos.Options{
		MaxPhotos: cfg.Reviews.MaxPhotos,
		MaxBytes:  cfg.Reviews.MaxPhotoBytes,
		Workers:   cfg.Reviews.EncodeWorkers,
	})

	catalogService := service.NewCatalogService(products, sessions, cfg.Catalog.PageSize, cfg.Catalog.MaxPrice)
	cartService := service.NewCartService(products, sessions)
	wishlistService := service.NewWishlistService(products, sessions)
	reviewService := service.NewReviewService(products, sessions, encoder, cfg.Reviews)
	checkoutService := service.NewCheckoutService(sessions)
	authService := service.NewAuthService(users, limiter, appCache, jwtKey, jwtExpiry)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{Catalog: products})
	if err != nil {
		return err
	}

	router := api.NewRouter(&api.Handlers{
		Catalog:  handlers.NewCatalogHandler(catalogService, catalog.Defaults{MaxPrice: cfg.Catalog.MaxPrice}),
		Cart:     handlers.NewCartHandler(cartService),
		Wishlist: handlers.NewWishlistHandler(wishlistService),
		Review:   handlers.NewReviewHandler(reviewService, cfg.Reviews),
		Checkout: handlers.NewCheckoutHandler(checkoutService),
		Auth:     handlers.NewAuthHandler(authService),
	}, api.Options{
		ServiceName: cfg.Otel.ServiceName,
		Session:     middleware.NewSession(cfg.Session.CookieName, cfg.Session.TTL, cfg.Session.CookieSecure),
		Auth:        middleware.NewAuthMiddleware(jwtKey),
		Health:      healthHandler.Handler(),
	})

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("session_backend", cfg.Session.Backend),
		slog.String("auth_backend", cfg.Auth.Backend),
	)

	// Setup http server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown encountered an issue: %w", err)
	}

	slog.Info("✅ Server shut down gracefully. All connections closed.")
	return nil
}
