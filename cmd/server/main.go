package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"folio/internal/auth"
	"folio/internal/config"
	"folio/internal/handler"
	"folio/internal/media"
	"folio/internal/middleware"
	"folio/internal/repository/postgres"
	"folio/internal/service"
	"folio/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := config.NewLogger(cfg.Debug)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Admin session verification: local HS256 by default. With an external
	// identity provider configured, JWKS verification replaces it and the
	// local login mint stays nil — tokens it issued would never verify.
	var verifier auth.TokenVerifier
	var issuer *auth.HMACVerifier
	if cfg.AuthJWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifier = jwksVerifier
	} else {
		var err error
		issuer, err = auth.NewHMACVerifier(cfg.AuthSecret, logger)
		if err != nil {
			log.Fatalf("Failed to create session issuer: %v", err)
		}
		verifier = issuer
	}
	defer verifier.Close()

	credentials := auth.NewCredentials(cfg.AdminUsername, cfg.AdminPasswordHash, logger)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	portfolioRepo := postgres.NewPortfolioRepository(repoConfig)
	messageRepo := postgres.NewMessageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Upload category rules and object store
	registry, err := media.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load media categories: %v", err)
	}
	store, err := storage.NewDiskStore(cfg.UploadDir, logger)
	if err != nil {
		log.Fatalf("Failed to open object store: %v", err)
	}

	// Create services
	contentService := service.NewPortfolioService(portfolioRepo, txManager, logger)
	uploadService := service.NewUploadService(registry, store, contentService, logger)
	messageService := service.NewMessageService(messageRepo, logger)

	// Create handlers
	portfolioHandler := handler.NewPortfolioHandler(contentService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger)
	resumeHandler := handler.NewResumeHandler(contentService, uploadService, logger)
	messageHandler := handler.NewMessageHandler(messageService, logger)
	authHandler := handler.NewAuthHandler(credentials, issuer, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", portfolioHandler.HealthCheck)

	// Admin session
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Public read surface
	mux.HandleFunc("GET /api/portfolio", portfolioHandler.GetPortfolio)
	mux.HandleFunc("GET /api/resume", resumeHandler.GetResume)

	// Write surface (admin session required)
	mux.HandleFunc("POST /api/portfolio", middleware.RequireAdmin(portfolioHandler.UpdateSection))
	mux.HandleFunc("POST /api/upload", middleware.RequireAdmin(uploadHandler.Upload))
	mux.HandleFunc("POST /api/resume", middleware.RequireAdmin(resumeHandler.UploadResume))
	mux.HandleFunc("DELETE /api/resume", middleware.RequireAdmin(resumeHandler.DeleteResume))

	// Messages: submit is public, admin actions are gated in the handler
	mux.HandleFunc("GET /api/messages", middleware.RequireAdmin(messageHandler.ListMessages))
	mux.HandleFunc("POST /api/messages", messageHandler.HandleAction)

	// Stored assets (public, read-only)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Root()))))

	// Build middleware chain
	// Order: CORS → Recovery → Auth context → Routes
	var root http.Handler = mux
	root = middleware.AuthContext(verifier)(root)
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
