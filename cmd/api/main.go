package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ZaighumCheema47/klap-closing-app/internal/application/service"
	"github.com/ZaighumCheema47/klap-closing-app/internal/config"
	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
	"github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/cache"
	"github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/database"
	infraRepo "github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/repository"
	"github.com/ZaighumCheema47/klap-closing-app/internal/infrastructure/sheets"
	"github.com/ZaighumCheema47/klap-closing-app/internal/presentation/http/handler"
	"github.com/ZaighumCheema47/klap-closing-app/internal/presentation/http/routes"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/email"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/printer"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := config.NewLogger(&cfg.App)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logger.WithError(err).Warn("failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := infraRepo.NewUserRepository(db)
	closingRepo := infraRepo.NewClosingRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Remote sheet store. Without credentials the app falls back to an
	// in-memory store so development works offline; submitted closings
	// then only live until restart.
	var rowStore repository.RowStore
	client, err := sheets.NewClient(context.Background(), cfg.Sheets.CredentialsFile)
	if err != nil {
		logger.WithError(err).Warn("sheets client unavailable, using in-memory row store")
		rowStore = sheets.NewMemoryStore()
	} else {
		rowStore = client
	}

	// Archive cache: redis when configured, otherwise pass-through.
	var closingCache cache.ClosingCache = cache.NoopClosingCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisClosingCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(context.Background()); err != nil {
			logger.WithError(err).Warn("redis unreachable, archive cache disabled")
		} else {
			closingCache = redisCache
			defer redisCache.Close()
		}
	}

	archive := sheets.NewClosingArchive(rowStore, &cfg.Sheets, closingCache, cfg.Redis.TTL, logger)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.WithError(err).Warn("failed to initialize printer")
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, logger)
	authService := service.NewAuthService(userRepo, jwtManager)
	closingService := service.NewClosingService(closingRepo, archive, printerService, emailService, cfg.Email.OwnerEmail, logger)
	reportService := service.NewReportService(archive)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Closing: handler.NewClosingHandler(closingService),
		Report:  handler.NewReportHandler(reportService),
		Printer: handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	logger.WithField("port", cfg.App.Port).Info("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
