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

	appControllers "github.com/examdesk/examdesk/internal/app/controllers"
	appMigrations "github.com/examdesk/examdesk/internal/app/migrations"
	appRepos "github.com/examdesk/examdesk/internal/app/repositories"
	appRoutes "github.com/examdesk/examdesk/internal/app/routes"
	appServices "github.com/examdesk/examdesk/internal/app/services"
	"github.com/examdesk/examdesk/internal/config"
	"github.com/examdesk/examdesk/internal/db"
	appMiddleware "github.com/examdesk/examdesk/internal/middleware"
	"github.com/examdesk/examdesk/internal/pkg/logger"
	"github.com/examdesk/examdesk/internal/seed"
)

// Dependencies holds all the application dependencies.
type Dependencies struct {
	Services               *appServices.Services
	Repos                  *appRepos.Repositories
	StudentController      *appControllers.StudentController
	ExamController         *appControllers.ExamController
	RegistrationController *appControllers.RegistrationController
	AttemptController      *appControllers.AttemptController
	NotificationController *appControllers.NotificationController
	StatisticsController   *appControllers.StatisticsController
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

// SetupDatabase establishes the database connection and runs migrations.
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
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes repositories, engine services and controllers,
// hydrates the roster from the database and optionally seeds demo data.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.Services = appServices.NewServices(
		deps.Repos.StudentRepository,
		appServices.Config{ReminderHorizonDays: cfg.Engine.ReminderHorizonDays},
		lgr,
	)

	if err := deps.Services.Directory.Hydrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to hydrate roster: %w", err)
	}

	if cfg.Engine.DemoData {
		seed.CreateDemoData(context.Background(), deps.Services, lgr)
	}

	deps.StudentController = appControllers.NewStudentController(deps.Services)
	deps.ExamController = appControllers.NewExamController(deps.Services)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.Services)
	deps.AttemptController = appControllers.NewAttemptController(deps.Services)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services)
	deps.StatisticsController = appControllers.NewStatisticsController(deps.Services)

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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.ExamController,
		deps.RegistrationController,
		deps.AttemptController,
		deps.NotificationController,
		deps.StatisticsController,
	)

	return router
}
