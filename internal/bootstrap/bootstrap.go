package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/gpacalc/internal/app/controllers"
	appMigrations "github.com/yigit/gpacalc/internal/app/migrations"
	"github.com/yigit/gpacalc/internal/app/models"
	appRepos "github.com/yigit/gpacalc/internal/app/repositories"
	appRoutes "github.com/yigit/gpacalc/internal/app/routes"
	appServices "github.com/yigit/gpacalc/internal/app/services"
	"github.com/yigit/gpacalc/internal/config"
	"github.com/yigit/gpacalc/internal/db"
	"github.com/yigit/gpacalc/internal/grading"
	appMiddleware "github.com/yigit/gpacalc/internal/middleware"
	pkgAuth "github.com/yigit/gpacalc/internal/pkg/auth"
	"github.com/yigit/gpacalc/internal/pkg/helpers"
	"github.com/yigit/gpacalc/internal/pkg/logger"
	"github.com/yigit/gpacalc/internal/pkg/websocket"
	"github.com/yigit/gpacalc/internal/seed"
)

// ConfigPathEnv overrides the location of the YAML config file
const ConfigPathEnv = "GPACALC_CONFIG"

// Dependencies holds all the application dependencies
type Dependencies struct {
	CalculatorService appServices.CalculatorService // Interface type
	GradingService    appServices.GradingService    // Interface type
	GradingController *appControllers.GradingController
	SessionController *appControllers.SessionController
	WebSocketHandler  *websocket.Handler
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	TokenService      *pkgAuth.SessionTokenService
	Hub               *websocket.Hub
	Catalog           *seed.Catalog
	SessionTTL        time.Duration
	CleanupInterval   time.Duration
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv(ConfigPathEnv)
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured session backend and returns its repositories
// together with a function releasing the underlying connections.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, func(), error) {
	switch cfg.StoreKind() {
	case models.SessionStorePostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		migrationsDir := cfg.Database.MigrationsDir
		if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
			database.Close()
			lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
			return nil, nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
		}

		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(database.Pool, lgr)
		if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		return appRepos.NewPostgresRepositories(database.Pool), database.Close, nil

	case models.SessionStoreSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.Database.SQLitePath)
		if err != nil {
			lgr.Error().Err(err).Str("path", cfg.Database.SQLitePath).Msg("Failed to open SQLite database")
			return nil, nil, err
		}
		lgr.Info().Str("path", cfg.Database.SQLitePath).Msg("SQLite session store opened")

		closer := func() {
			if err := sqlDB.Close(); err != nil {
				lgr.Error().Err(err).Msg("Failed to close SQLite database")
			}
		}
		return appRepos.NewSQLiteRepositories(sqlDB), closer, nil

	default:
		lgr.Info().Msg("Using in-memory session store")
		return appRepos.NewMemoryRepositories(), func() {}, nil
	}
}

// BuildDependencies initializes services, controllers and the live result hub.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Repos:           repos,
		Logger:          lgr,
		SessionTTL:      helpers.ParseDuration(cfg.Session.TTL, 24*time.Hour),
		CleanupInterval: helpers.ParseDuration(cfg.Session.CleanupInterval, 5*time.Minute),
	}

	catalog, err := seed.LoadCatalog(cfg.Session.SeedFile, lgr)
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.Session.SeedFile).Msg("Failed to load seed catalog")
		return nil, fmt.Errorf("failed to load seed catalog: %w", err)
	}
	deps.Catalog = catalog

	deps.TokenService = pkgAuth.NewSessionTokenService(pkgAuth.TokenConfig{
		SecretKey:   cfg.Token.Secret,
		TokenIssuer: cfg.Token.Issuer,
	})

	deps.Hub = websocket.NewHub(lgr)

	deps.GradingService = appServices.NewGradingService(grading.DefaultScale)
	deps.CalculatorService = appServices.NewCalculatorService(
		repos.SessionRepository,
		catalog,
		deps.TokenService,
		deps.Hub,
		appServices.CalculatorConfig{
			TTL:   deps.SessionTTL,
			Scale: grading.DefaultScale,
		},
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.TokenService)

	deps.GradingController = appControllers.NewGradingController(deps.GradingService)
	deps.SessionController = appControllers.NewSessionController(deps.CalculatorService)
	deps.WebSocketHandler = websocket.NewHandler(deps.Hub, snapshotFunc(deps.CalculatorService), lgr)

	return deps, nil
}

// snapshotFunc adapts the calculator service to the first message a subscriber receives
func snapshotFunc(calculator appServices.CalculatorService) websocket.SnapshotFunc {
	return func(ctx context.Context, sessionID string) (*websocket.Message, error) {
		update, err := calculator.Snapshot(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &websocket.Message{
			Type:      websocket.MessageTypeResult,
			SessionID: sessionID,
			Data:      update,
			Timestamp: time.Now().UTC(),
		}, nil
	}
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
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.GradingController,
		deps.SessionController,
		deps.WebSocketHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"store":  appRepos.Backend(deps.Repos.SessionRepository),
		})
	})

	return router
}
