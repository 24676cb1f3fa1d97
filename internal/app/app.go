package app

import (
	"fmt"

	"contacts_backend/database"
	"contacts_backend/internal/auth"
	"contacts_backend/internal/config"
	"contacts_backend/internal/email"
	"contacts_backend/internal/handlers"
	"contacts_backend/internal/imageprocessor"
	"contacts_backend/internal/logger"
	"contacts_backend/internal/middleware"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/routes"
	"contacts_backend/internal/services"
	"contacts_backend/internal/storage"
	"contacts_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the whole service: config, logger, database, migrations, router.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	router, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with all dependencies wired. Split out
// of Run so tests can construct the full HTTP surface without a listener.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, error) {
	files, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var provider email.Provider
	if cfg.Email.SMTPHost != "" {
		provider = email.NewSMTPProvider(cfg)
	} else {
		logger.Warn("SMTP is not configured, outgoing email is mocked")
		provider = &MockEmailProvider{}
	}

	accountRepo := repositories.NewAccountRepository(gormDB)
	contactRepo := repositories.NewContactRepository(gormDB)

	tokens := auth.NewTokenIssuer(cfg)
	images := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)
	mail := services.NewEmailService(provider, cfg)

	accountService := services.NewAccountService(accountRepo, mail, tokens, images, files)
	contactService := services.NewContactService(contactRepo)

	v := validator.New()
	base := handlers.NewBaseHandler(v)
	appHandlers := &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(base, accountService),
		UserHandler:    handlers.NewUserHandler(base, accountService, cfg),
		ContactHandler: handlers.NewContactHandler(base, contactService),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	authRequired := middleware.Authenticate(tokens, accountRepo)
	routes.RegisterRoutes(router, appHandlers, authRequired, cfg)

	return router, nil
}
