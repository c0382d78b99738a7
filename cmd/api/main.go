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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/homeflix/homeflix/internal/auth"
	"github.com/homeflix/homeflix/internal/config"
	"github.com/homeflix/homeflix/internal/database"
	"github.com/homeflix/homeflix/internal/handlers"
	middlewareCustom "github.com/homeflix/homeflix/internal/middleware"
	"github.com/homeflix/homeflix/internal/models"
	"github.com/homeflix/homeflix/internal/repositories"
	"github.com/homeflix/homeflix/internal/routes"
	"github.com/homeflix/homeflix/internal/services"
	pkgauth "github.com/homeflix/homeflix/pkg/auth"
	pkglogger "github.com/homeflix/homeflix/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	movieRepo := repositories.NewMovieRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	genreRepo := repositories.NewGenreRepository(db)
	listingRepo := repositories.NewListingRepository(db)

	// Services
	tokenManager := auth.NewTokenManager()
	auditLogger := pkglogger.NewAuditLogger(logger)
	authService := services.NewAuthService(userRepo, tokenRepo, tokenManager, logger, auditLogger)
	catalogService := services.NewCatalogService(movieRepo, tagRepo, genreRepo, listingRepo, logger)
	profileService := services.NewProfileService(profileRepo, logger)

	// Handlers
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Movies:   handlers.NewMovieHandler(catalogService),
		Tags:     handlers.NewTagHandler(catalogService),
		Genres:   handlers.NewGenreHandler(catalogService),
		Listings: handlers.NewListingHandler(catalogService),
		Profiles: handlers.NewProfileHandler(profileService),
	}

	// Bootstrap first admin user if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(ctx, cfg, userRepo, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	cancel()

	// Router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(cfg.Server.Env))
	router.Use(middlewareCustom.CORS(middlewareCustom.CORSConfig{AllowedOrigins: cfg.Server.AllowedOrigins}))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	rateLimit := middlewareCustom.RateLimitConfig{RequestsPerMinute: cfg.Auth.AuthRequestsPerMinute}
	routes.RegisterRoutes(router, h, authService, rateLimit)

	// Health check with database ping
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminUser creates the first superuser if ADMIN_EMAIL and ADMIN_PASSWORD are set
func ensureAdminUser(ctx context.Context, cfg *config.Config, userRepo *repositories.UserRepository, logger *slog.Logger) error {
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	_, err := userRepo.GetByEmail(ctx, cfg.Auth.AdminEmail)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := pkgauth.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = userRepo.Create(ctx, &models.User{
		Email:        cfg.Auth.AdminEmail,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsSuperuser:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created", slog.String("email", pkglogger.SanitizedEmail(cfg.Auth.AdminEmail)))
	return nil
}
