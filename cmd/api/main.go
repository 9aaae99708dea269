package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/bigipmachine/backend/docs"
	"github.com/bigipmachine/backend/internal/analysis"
	authmw "github.com/bigipmachine/backend/internal/auth/middleware"
	authservice "github.com/bigipmachine/backend/internal/auth/service"
	"github.com/bigipmachine/backend/internal/config"
	"github.com/bigipmachine/backend/internal/handlers"
	"github.com/bigipmachine/backend/internal/logger"
	loggerMiddleware "github.com/bigipmachine/backend/internal/logger/middleware"
	"github.com/bigipmachine/backend/internal/middlewares"
	"github.com/bigipmachine/backend/internal/repositories"
	"github.com/bigipmachine/backend/internal/services"
	"github.com/bigipmachine/backend/internal/storage"
	"github.com/bigipmachine/backend/internal/tokenize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// maxUploadSize bounds multipart content uploads.
const maxUploadSize = 500 * 1024 * 1024 // 500MB

// @title The Big IP Machine API
// @version 1.0
// @description Demo IP tokenization platform: uploads, originality analysis and token allocation

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT access token
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Big IP Machine API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Create Asynq client for queueing email tasks
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// Initialize JWT token generator
	tokenGenerator := authservice.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUsersRepository(db, logger.Logger)
	verificationRepo := repositories.NewVerificationsRepository(db, logger.Logger)
	tokenRepo := repositories.NewTokensRepository(db, logger.Logger)
	contentRepo := repositories.NewContentRepository(db, logger.Logger)
	uploadRepo := repositories.NewUploadsRepository(db, logger.Logger)
	emailTaskRepo := repositories.NewEmailTasksRepository(db, logger.Logger)

	// Initialize services
	store := storage.NewLocalStorage(cfg.UploadBasePath)
	engine := analysis.NewEngine()
	allocator := tokenize.NewAllocator()

	notificationService := services.NewNotificationService(emailTaskRepo, userRepo, asynqClient, logger.Logger)
	registrationService := services.NewRegistrationService(
		userRepo, verificationRepo, notificationService,
		logger.Logger, cfg.BaseURL, cfg.VerificationTokenExpiry,
	)
	authService := services.NewAuthService(userRepo, tokenRepo, tokenGenerator, logger.Logger)
	contentService := services.NewContentService(contentRepo, store, logger.Logger)
	tokenizationService := services.NewTokenizationService(contentRepo, allocator, engine, logger.Logger)
	uploadService := services.NewUploadService(uploadRepo, userRepo, notificationService, logger.Logger)

	// Initialize auth middleware
	authMiddleware := authmw.AuthMiddleware(tokenGenerator)
	optionalAuth := authmw.OptionalAuthMiddleware(tokenGenerator)

	// Initialize handlers
	registrationHandler := handlers.NewRegistrationHandler(registrationService, authMiddleware, logger.Logger)
	authHandler := handlers.NewAuthHandler(authService, authMiddleware, optionalAuth, logger.Logger)
	contentHandler := handlers.NewContentHandler(contentService, uploadService, authMiddleware, optionalAuth, logger.Logger)
	tokenizationHandler := handlers.NewTokenizationHandler(tokenizationService, logger.Logger)
	analysisHandler := handlers.NewAnalysisHandler(engine, logger.Logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, authMiddleware, cfg.APIKey, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxUploadSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		registrationHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r)
		contentHandler.RegisterRoutes(r)
		tokenizationHandler.RegisterRoutes(r)
		analysisHandler.RegisterRoutes(r)
		notificationHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  5 * time.Minute, // large uploads
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
