package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forpharma-console/config"
	deliveryHttp "forpharma-console/internal/delivery/http"
	"forpharma-console/internal/delivery/http/handler"
	"forpharma-console/internal/delivery/http/middleware"
	"forpharma-console/internal/infrastructure/cache"
	"forpharma-console/internal/infrastructure/database"
	"forpharma-console/internal/infrastructure/forpharma"
	"forpharma-console/internal/jobs"
	"forpharma-console/internal/repository"
	"forpharma-console/internal/service"
	"forpharma-console/internal/usecase"
	"forpharma-console/pkg/jwt"
	"forpharma-console/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	DB            *gorm.DB
	RedisClient   *redis.Client
	Server        *http.Server
	ReferenceSync *service.ReferenceSyncService
	Scheduler     *jobs.Scheduler
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	log := logrus.StandardLogger()

	// Schema first, the repositories assume it
	if err := database.Migrate(cfg.DB, log); err != nil {
		return nil, err
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	if err := app.initialize(log); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// initialize wires every layer and builds the HTTP server
func (app *App) initialize(log *logrus.Logger) error {
	cfg := app.Config

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	forpharmaClient := forpharma.NewClient(cfg.Upstream, log)

	// Initialize repositories
	wizardRepo := repository.NewWizardRepository(app.RedisClient)
	sessionRepo := repository.NewSessionRepository(app.RedisClient)
	referenceCache := repository.NewReferenceCache(app.RedisClient)
	reportRepo := repository.NewSubmissionReportRepository(app.DB)
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(app.DB, log, auditLogRepo)
	app.ReferenceSync = service.NewReferenceSyncService(forpharmaClient, referenceCache, log, cfg.Wizard.ReferenceCacheTTL)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, forpharmaClient, sessionRepo, jwtService, auditService)
	onboardingUsecase := usecase.NewOnboardingUsecase(log, wizardRepo, reportRepo, forpharmaClient, app.ReferenceSync, auditService, cfg.Wizard)
	referenceUsecase := usecase.NewReferenceUsecase(log, forpharmaClient, app.ReferenceSync, auditService)
	reportUsecase := usecase.NewSubmissionReportUsecase(log, reportRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(app.DB, log, auditLogRepo)
	userUsecase := usecase.NewUserUsecase(log, forpharmaClient, auditService)

	// Scheduled jobs
	app.Scheduler = jobs.NewScheduler(log, reportUsecase)
	if err := app.Scheduler.Start(cfg.Report); err != nil {
		return err
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	wizardHandler := handler.NewWizardHandler(onboardingUsecase, customValidator)
	referenceHandler := handler.NewReferenceHandler(referenceUsecase, customValidator)
	reportHandler := handler.NewSubmissionReportHandler(reportUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionRepo, log)
	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryHttp.NewRouter(authHandler, wizardHandler, referenceHandler, reportHandler, auditLogHandler, userHandler, authMiddleware, corsMiddleware)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logrus.WithField("consultation_mode", cfg.Wizard.ConsultationMode).Info("Onboarding wizard configured")
	return nil
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

	// In-flight submissions finish before their stores close
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background work and closes all connections
func (app *App) Close() {
	if app.Scheduler != nil {
		app.Scheduler.Stop()
	}
	if app.ReferenceSync != nil {
		app.ReferenceSync.Stop()
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
