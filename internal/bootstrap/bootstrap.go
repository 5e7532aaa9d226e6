// Package bootstrap wires the application together: configuration, logging,
// database, repositories, services, controllers and the router.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/rssb/sewadar-backend/internal/app/controllers"
	appMigrations "github.com/rssb/sewadar-backend/internal/app/migrations"
	appRepos "github.com/rssb/sewadar-backend/internal/app/repositories"
	appRoutes "github.com/rssb/sewadar-backend/internal/app/routes"
	appServices "github.com/rssb/sewadar-backend/internal/app/services"
	"github.com/rssb/sewadar-backend/internal/config"
	"github.com/rssb/sewadar-backend/internal/db"
	appMiddleware "github.com/rssb/sewadar-backend/internal/middleware"
	pkgAuth "github.com/rssb/sewadar-backend/internal/pkg/auth"
	"github.com/rssb/sewadar-backend/internal/pkg/helpers"
	"github.com/rssb/sewadar-backend/internal/pkg/logger"
	"github.com/rssb/sewadar-backend/internal/pkg/notify"
	"github.com/rssb/sewadar-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	SewadarService         *appServices.SewadarService
	ProgramService         *appServices.ProgramService
	ApplicationService     *appServices.ApplicationService
	WorkflowService        *appServices.WorkflowService
	FormService            *appServices.FormService
	AttendanceService      *appServices.AttendanceService
	NotificationService    *appServices.NotificationService
	DashboardService       *appServices.DashboardService
	AuthController         *appControllers.AuthController
	SewadarController      *appControllers.SewadarController
	ProgramController      *appControllers.ProgramController
	ApplicationController  *appControllers.ApplicationController
	WorkflowController     *appControllers.WorkflowController
	FormController         *appControllers.FormController
	AttendanceController   *appControllers.AttendanceController
	NotificationController *appControllers.NotificationController
	DashboardController    *appControllers.DashboardController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Mailer                 notify.Mailer
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Startup continues; the seed logs its own failures
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Mailer = notify.NewSMTPMailer(notify.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.SewadarRepository,
		deps.JWTService,
		lgr,
	)
	deps.SewadarService = appServices.NewSewadarService(deps.Repos.SewadarRepository, lgr)
	deps.ProgramService = appServices.NewProgramService(
		deps.Repos.ProgramRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.WorkflowRepository,
		lgr,
	)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ProgramRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.WorkflowRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.SewadarRepository,
		deps.Mailer,
		lgr,
	)
	deps.WorkflowService = appServices.NewWorkflowService(
		deps.Repos.ProgramRepository,
		deps.Repos.WorkflowRepository,
		deps.Repos.FormSubmissionRepository,
		deps.Repos.NotificationPreferenceRepository,
		deps.Repos.ProgramNotificationPreferenceRepository,
		deps.Repos.SewadarRepository,
		deps.Mailer,
		lgr,
	)
	deps.FormService = appServices.NewFormService(
		deps.Repos.ProgramRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.WorkflowRepository,
		deps.Repos.FormSubmissionRepository,
		lgr,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.ProgramRepository,
		deps.Repos.ApplicationRepository,
		deps.Repos.AttendanceRepository,
		lgr,
	)
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationPreferenceRepository,
		deps.Repos.ProgramNotificationPreferenceRepository,
		deps.Repos.NotificationRepository,
		deps.Repos.ProgramRepository,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.SewadarRepository,
		deps.Repos.ProgramRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.SewadarController = appControllers.NewSewadarController(deps.SewadarService)
	deps.ProgramController = appControllers.NewProgramController(deps.ProgramService)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService)
	deps.WorkflowController = appControllers.NewWorkflowController(deps.WorkflowService)
	deps.FormController = appControllers.NewFormController(deps.FormService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SewadarController,
		deps.ProgramController,
		deps.ApplicationController,
		deps.WorkflowController,
		deps.FormController,
		deps.AttendanceController,
		deps.NotificationController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	return router
}
