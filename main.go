package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/audit"
	"github.com/airkon-pratama/vendor-portal/pkg/auth"
	"github.com/airkon-pratama/vendor-portal/pkg/config"
	"github.com/airkon-pratama/vendor-portal/pkg/database"
	"github.com/airkon-pratama/vendor-portal/pkg/handlers"
	"github.com/airkon-pratama/vendor-portal/pkg/llm"
	"github.com/airkon-pratama/vendor-portal/pkg/logging"
	"github.com/airkon-pratama/vendor-portal/pkg/middleware"
	"github.com/airkon-pratama/vendor-portal/pkg/repositories"
	"github.com/airkon-pratama/vendor-portal/pkg/services"
	"github.com/airkon-pratama/vendor-portal/pkg/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
		zap.String("storage_bucket", cfg.Storage.Bucket),
		zap.Bool("assistant_enabled", cfg.Assistant.IsAvailable()))

	ctx := context.Background()

	// Database
	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database.URL(), cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Photo object storage
	store, err := storage.NewMinioStore(ctx, &cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Auth wiring: Google sign-in, session tokens, admin allow-list
	verifier, err := auth.NewJWKSVerifier(&auth.VerifierConfig{
		ClientID:           cfg.OAuth.ClientID,
		EnableVerification: cfg.Auth.EnableVerification,
	})
	if err != nil {
		logger.Fatal("Failed to initialize ID token verifier", zap.Error(err))
	}

	oauthClient := auth.NewOAuthClient(cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, cfg.OAuth.RedirectURL, logger)
	issuer := auth.NewTokenIssuer(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	allowlist := auth.NewAllowlist(cfg.Auth.AdminEmails)
	authService := auth.NewAuthService(issuer, allowlist, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	cookieSettings := auth.DeriveCookieSettings(cfg.BaseURL, cfg.Auth.CookieDomain)
	prefs := auth.NewPreferenceStore(cfg.Auth.SessionSecret, cookieSettings.Secure)

	// Services
	jobRepo := repositories.NewJobRepository(db)
	jobService := services.NewJobService(jobRepo, store, logger)

	var llmClient llm.LLMClient
	if cfg.Assistant.IsAvailable() {
		client, err := llm.NewClient(&llm.Config{
			Endpoint: cfg.Assistant.BaseURL,
			Model:    cfg.Assistant.Model,
			APIKey:   cfg.Assistant.APIKey,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to initialize assistant client", zap.Error(err))
		}
		llmClient = client
	}
	assistantService := services.NewAssistantService(llmClient, logger)

	mux := http.NewServeMux()

	// Register handlers
	healthHandler := handlers.NewHealthHandler(cfg.Version, logger)
	healthHandler.RegisterRoutes(mux)

	authHandler := handlers.NewAuthHandler(oauthClient, verifier, issuer, authService, prefs, cfg, logger)
	authHandler.RegisterRoutes(mux, authMiddleware)

	trail := audit.NewTrail(logger)
	jobHandler := handlers.NewJobHandler(jobService, assistantService, trail, logger)
	jobHandler.RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting vendor-portal",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func buildLogger(env string) (*zap.Logger, error) {
	if strings.EqualFold(env, "local") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
