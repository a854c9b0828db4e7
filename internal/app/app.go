package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dienstmarkt_backend/database"
	"dienstmarkt_backend/internal/auth"
	"dienstmarkt_backend/internal/config"
	"dienstmarkt_backend/internal/email"
	"dienstmarkt_backend/internal/handlers"
	"dienstmarkt_backend/internal/imageprocessor"
	"dienstmarkt_backend/internal/logger"
	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/routes"
	"dienstmarkt_backend/internal/services"
	"dienstmarkt_backend/internal/storage"
	"dienstmarkt_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
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

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(cfg, serviceContainer.AuthService)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	var mailer email.Provider
	if cfg.Email.Enabled {
		mailer = email.NewSMTPProvider(email.SMTPConfig{
			Host: cfg.Email.SMTPHost,
			Port: cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.FromEmail,
			FromName: cfg.Email.FromName,
		})
	} else {
		logger.Warn("Email delivery disabled, using no-op provider")
		mailer = &email.NoopProvider{}
	}

	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	reviewRepo := repositories.NewReviewRepository()
	jobRepo := repositories.NewJobRepository()
	favoriteRepo := repositories.NewFavoriteRepository()
	bannedEmailRepo := repositories.NewBannedEmailRepository()
	uploadRepo := repositories.NewUploadRepository()

	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)
	uploadService := services.NewUploadService(gormDB, uploadRepo, storageInstance, processor, services.UploadLimits{
		MaxSize:      cfg.Upload.MaxSize,
		MaxFiles:     cfg.Upload.MaxFiles,
		AllowedTypes: cfg.Upload.AllowedTypes,
	})

	return &services.ServiceContainer{
		AuthService:     services.NewAuthService(gormDB, userRepo, bannedEmailRepo, mailer),
		UserService:     services.NewUserService(gormDB, userRepo),
		ProfileService:  services.NewProfileService(gormDB, profileRepo, reviewRepo, userRepo),
		ReviewService:   services.NewReviewService(gormDB, reviewRepo, profileRepo),
		JobService:      services.NewJobService(gormDB, jobRepo),
		FavoriteService: services.NewFavoriteService(gormDB, favoriteRepo, profileRepo),
		AdminService: services.NewAdminService(
			gormDB, userRepo, profileRepo, reviewRepo, jobRepo,
			favoriteRepo, bannedEmailRepo, mailer,
		),
		UploadService: uploadService,
	}
}

func initializeHandlers(sc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, sc.AuthService),
		UserHandler:     handlers.NewUserHandler(baseHandler, sc.UserService),
		ProfileHandler:  handlers.NewProfileHandler(baseHandler, sc.ProfileService, sc.UploadService),
		ReviewHandler:   handlers.NewReviewHandler(baseHandler, sc.ReviewService),
		JobHandler:      handlers.NewJobHandler(baseHandler, sc.JobService, sc.UploadService),
		FavoriteHandler: handlers.NewFavoriteHandler(baseHandler, sc.FavoriteService),
		AdminHandler:    handlers.NewAdminHandler(baseHandler, sc.AdminService, sc.ReviewService, sc.JobService),
		UploadHandler:   handlers.NewUploadHandler(baseHandler, sc.UploadService),
		FileHandler:     handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter(cfg *config.Config, authService services.AuthService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SessionMiddleware(cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.MaxAge))
	router.Use(middleware.IdentityResolver(authService))
	return router
}

// seedFirstAdmin creates the initial admin account when the configured
// email does not exist yet. Without it a fresh install has no way to
// reach the moderation endpoints.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists, skipping creation", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
		IsAdmin:      true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
