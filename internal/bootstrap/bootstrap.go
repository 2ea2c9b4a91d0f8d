// Package bootstrap wires configuration, storage, the student roster and
// the HTTP layer together at startup.
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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/nnrgconnect/backend/internal/app/controllers"
	appMigrations "github.com/nnrgconnect/backend/internal/app/migrations"
	appRepos "github.com/nnrgconnect/backend/internal/app/repositories"
	appRoutes "github.com/nnrgconnect/backend/internal/app/routes"
	appServices "github.com/nnrgconnect/backend/internal/app/services"
	"github.com/nnrgconnect/backend/internal/config"
	"github.com/nnrgconnect/backend/internal/db"
	appMiddleware "github.com/nnrgconnect/backend/internal/middleware"
	pkgAuth "github.com/nnrgconnect/backend/internal/pkg/auth"
	"github.com/nnrgconnect/backend/internal/pkg/filestorage"
	"github.com/nnrgconnect/backend/internal/pkg/helpers"
	"github.com/nnrgconnect/backend/internal/pkg/logger"
	"github.com/nnrgconnect/backend/internal/roster"
	"github.com/nnrgconnect/backend/internal/seed"
	"github.com/nnrgconnect/backend/internal/session"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	ApprovalService     *appServices.ApprovalService
	DirectoryService    *appServices.DirectoryService
	JobService          *appServices.JobService
	EventService        *appServices.EventService
	MessageService      *appServices.MessageService
	AuthController      *appControllers.AuthController
	AdminController     *appControllers.AdminController
	DirectoryController *appControllers.DirectoryController
	JobController       *appControllers.JobController
	EventController     *appControllers.EventController
	MessageController   *appControllers.MessageController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	FileStorage         *filestorage.LocalStorage
	Sessions            session.Store
	Roster              *roster.Roster
	RedisClient         *redis.Client
	Logger              zerolog.Logger
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
// seeds default data.
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
		// Seed failures are logged but do not stop startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// buildSessionStore picks the session store implementation the
// configuration asks for.
func buildSessionStore(cfg *config.Config, lgr zerolog.Logger) (session.Store, *redis.Client, error) {
	ttl := helpers.ParseDuration(cfg.Session.TTL, 720*time.Hour)

	switch cfg.Session.Store {
	case "redis":
		client, err := db.NewRedisClient(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to redis")
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis session store")
		return session.NewRedisStore(client, ttl), client, nil
	default:
		lgr.Info().Msg("Using in-memory session store")
		return session.NewMemoryStore(), nil, nil
	}
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	sessions, redisClient, err := buildSessionStore(cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.Sessions = sessions
	deps.RedisClient = redisClient

	deps.Roster = roster.New(roster.DirSource{Dir: cfg.Directory.SourceDir}, lgr)

	// Uploaded ID cards are served back under the static /uploads route
	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Sessions,
		deps.JWTService,
		lgr,
	)
	deps.ApprovalService = appServices.NewApprovalService(deps.Repos.UserRepository, lgr)
	deps.DirectoryService = appServices.NewDirectoryService(deps.Roster, lgr)
	deps.JobService = appServices.NewJobService(deps.Repos.JobRepository, lgr)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, lgr)
	deps.MessageService = appServices.NewMessageService(deps.Repos.MessageRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.FileStorage, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.ApprovalService, lgr)
	deps.DirectoryController = appControllers.NewDirectoryController(deps.DirectoryService, lgr)
	deps.JobController = appControllers.NewJobController(deps.JobService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, deps.AuthService, lgr)

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

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AdminController,
		deps.DirectoryController,
		deps.JobController,
		deps.EventController,
		deps.MessageController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
