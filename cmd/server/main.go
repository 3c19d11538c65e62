package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"memoir/config"
	_ "memoir/docs"
	"memoir/internal/adapters/auth"
	"memoir/internal/adapters/drive"
	"memoir/internal/adapters/email"
	"memoir/internal/adapters/fetch"
	"memoir/internal/adapters/storage"
	httpdelivery "memoir/internal/delivery/http"
	"memoir/internal/delivery/http/controllers"
	"memoir/internal/delivery/http/middleware"
	"memoir/internal/repository/postgres"
	"memoir/internal/services"
)

const (
	serviceTimeout = 10 * time.Second
	bcryptCost     = 12
)

// @title Memoir API
// @version 1.0
// @description Guest memory collection, moderation, and export for organizer events.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	memoryRepo := postgres.NewMemoryRepository(db)
	userRepo := postgres.NewUserRepository(db)

	objectStore, err := storage.NewS3Store(storage.S3Config{
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Endpoint:        cfg.S3.Endpoint,
		PublicBaseURL:   cfg.S3.PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to init object store", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.Region,
			AccessKeyID:     cfg.Mailer.AccessKeyID,
			SecretAccessKey: cfg.Mailer.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to init mailer", "err", err)
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcryptCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	eventService := services.NewEventService(eventRepo, serviceTimeout)
	memoryService := services.NewMemoryService(memoryRepo, eventRepo, objectStore, logger, serviceTimeout)
	userService := services.NewUserService(userRepo, hasher, tokenIssuer, serviceTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	exportService := services.NewExportService(
		fetch.NewHTTPFetcher(nil),
		drive.NewClient(nil, cfg.DriveAPIBase),
		logger,
		services.DefaultExportWorkers,
	)

	authController := controllers.NewAuthController(logger, userService)
	eventController := controllers.NewEventController(logger, eventService, memoryService)
	memoryController := controllers.NewMemoryController(logger, memoryService)
	exportController := controllers.NewExportController(logger, eventService, memoryService, exportService, userService, emailService)

	mux := httpdelivery.NewRouter(authController, eventController, memoryController, exportController, tokenVerifier, logger)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
