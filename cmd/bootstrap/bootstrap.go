package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-admin/config"
	deliveryHttp "hospital-admin/internal/delivery/http"
	"hospital-admin/internal/delivery/http/handler"
	"hospital-admin/internal/delivery/http/middleware"
	domainRepo "hospital-admin/internal/domain/repository"
	"hospital-admin/internal/infrastructure/cache"
	"hospital-admin/internal/infrastructure/collaborator"
	"hospital-admin/internal/infrastructure/database"
	"hospital-admin/internal/repository"
	"hospital-admin/internal/service"
	"hospital-admin/internal/usecase"
	"hospital-admin/pkg/jwt"
	"hospital-admin/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrSessionSecretRequired = errors.New("SESSION_SECRET is required")

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Server       *http.Server
	Registration usecase.DoctorRegistrationUsecase
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Session.Secret == "" {
		return nil, ErrSessionSecretRequired
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Audit database is optional
	if cfg.Audit.Enabled {
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		logrus.Info("Database connected successfully")
	}

	// Drafts live in Redis or in process memory
	var draftRepo domainRepo.DraftRepository
	switch cfg.Draft.Store {
	case config.DraftStoreRedis:
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		draftRepo = repository.NewRedisDraftRepository(redisClient)
		logrus.Info("Redis connected successfully")
	case config.DraftStoreMemory, "":
		draftRepo = repository.NewMemoryDraftRepository()
	default:
		app.Close()
		return nil, fmt.Errorf("unknown draft store %q", cfg.Draft.Store)
	}

	// Initialize all layers
	app.Server, app.Registration, err = initializeServer(cfg, app.DB, draftRepo)
	if err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, draftRepo domainRepo.DraftRepository) (*http.Server, usecase.DoctorRegistrationUsecase, error) {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize session token service
	jwtService := jwt.NewJWTService(cfg.Session)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize collaborators
	httpClient := collaborator.NewHTTPClient(cfg.Collaborator.Timeout)
	uploader := collaborator.NewUploadClient(cfg.Collaborator.UploadEndpoint, httpClient, log)
	recorder := collaborator.NewDoctorRecordClient(cfg.Collaborator.DoctorsEndpoint, httpClient, log)
	previews := service.NewPreviewRegistry(service.DefaultPreviewPrefix)

	// Initialize repositories and services
	auditLogRepo := repository.NewAuditLogRepository()
	auditService := service.NewNoopAuditService()
	if db != nil {
		auditService = service.NewAuditService(db, log, auditLogRepo)
	}

	// Initialize usecases
	registrationUsecase := usecase.NewDoctorRegistrationUsecase(
		log, draftRepo, auditService, uploader, recorder, previews, customValidator,
		usecase.RegistrationConfig{
			DraftTTL: cfg.Session.TTL,
		},
	)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	doctorFormHandler := handler.NewDoctorFormHandler(registrationUsecase, customValidator)
	doctorPageHandler, err := handler.NewDoctorPageHandler(registrationUsecase, log)
	if err != nil {
		registrationUsecase.Stop()
		return nil, nil, fmt.Errorf("failed to load page templates: %w", err)
	}
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	secureCookie := cfg.App.Env == "production"
	sessionMiddleware := middleware.NewSessionMiddleware(jwtService, cfg.Session.CookieName, secureCookie, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins...)

	// Initialize router
	router := deliveryHttp.NewRouter(log, doctorFormHandler, doctorPageHandler, auditLogHandler, sessionMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, registrationUsecase, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops the form sessions and closes database and redis connections
func (app *App) Close() {
	if app.Registration != nil {
		app.Registration.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
