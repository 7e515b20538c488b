package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/bearnet/internal/app/controllers"
	appMigrations "github.com/yigit/bearnet/internal/app/migrations"
	appRepos "github.com/yigit/bearnet/internal/app/repositories"
	"github.com/yigit/bearnet/internal/app/repositories/gormstore"
	appRoutes "github.com/yigit/bearnet/internal/app/routes"
	appServices "github.com/yigit/bearnet/internal/app/services"
	"github.com/yigit/bearnet/internal/config"
	"github.com/yigit/bearnet/internal/db"
	appMiddleware "github.com/yigit/bearnet/internal/middleware"
	"github.com/yigit/bearnet/internal/pkg/logger"
	"github.com/yigit/bearnet/internal/pkg/metrics"
	"github.com/yigit/bearnet/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService    appServices.StudentService // Interface type
	CourseService     appServices.CourseService  // Interface type
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController
	Repos             *appRepos.Repositories
	Metrics           *metrics.Metrics
	Logger            zerolog.Logger
}

// Database holds whichever backend the configured driver opened
type Database struct {
	Postgres *db.PostgresDB
	SQLite   *db.SQLiteDB
}

// Repositories builds the repository container for the open backend
func (d *Database) Repositories() *appRepos.Repositories {
	if d.Postgres != nil {
		return appRepos.NewRepositories(d.Postgres.Pool)
	}
	return gormstore.NewRepositories(d.SQLite.DB)
}

// Close releases the open backend
func (d *Database) Close() {
	if d.Postgres != nil {
		d.Postgres.Close()
	}
	if d.SQLite != nil {
		d.SQLite.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml location.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from the logging section
func SetupLogger(cfg *config.Config) zerolog.Logger {
	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return lgr
}

// SetupDatabase opens the configured backend, brings the schema up to date
// and optionally seeds default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	database := &Database{}

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		lgr.Info().Str("path", cfg.Database.Path).Msg("Opening SQLite database...")
		sqlite, err := db.NewSQLiteDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open SQLite database")
			return nil, err
		}
		database.SQLite = sqlite

		if err := gormstore.AutoMigrate(sqlite.DB); err != nil {
			sqlite.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
	default:
		lgr.Info().Msg("Establishing database connection...")
		postgres, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		database.Postgres = postgres

		if err := runMigrations(ctx, cfg, postgres, lgr); err != nil {
			postgres.Close()
			return nil, err
		}
	}
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Database ready.")

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, database.Repositories().CourseRepository, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, postgres *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(postgres.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{
		Repos:   repos,
		Metrics: metrics.New(),
		Logger:  lgr,
	}

	deps.StudentService = appServices.NewStudentService(repos.StudentRepository, repos.CourseRepository, deps.Metrics, lgr)
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case strings.EqualFold(cfg.Server.Mode, "test"):
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.Metrics(deps.Metrics))
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.StudentController, deps.CourseController)

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", appMiddleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", appMiddleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
