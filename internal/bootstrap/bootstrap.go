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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/loopinhq/backend/docs" // Import generated swagger docs
	appControllers "github.com/loopinhq/backend/internal/app/controllers"
	appMigrations "github.com/loopinhq/backend/internal/app/migrations"
	appRepos "github.com/loopinhq/backend/internal/app/repositories"
	appRoutes "github.com/loopinhq/backend/internal/app/routes"
	appServices "github.com/loopinhq/backend/internal/app/services"
	"github.com/loopinhq/backend/internal/config"
	"github.com/loopinhq/backend/internal/db"
	appMiddleware "github.com/loopinhq/backend/internal/middleware"
	"github.com/loopinhq/backend/internal/pkg/alerts"
	pkgAuth "github.com/loopinhq/backend/internal/pkg/auth"
	"github.com/loopinhq/backend/internal/pkg/helpers"
	"github.com/loopinhq/backend/internal/pkg/logger"
	"github.com/loopinhq/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	CityService            *appServices.CityService
	EventService           *appServices.EventService
	ResolutionService      *appServices.ResolutionService
	VenueService           *appServices.VenueService
	CommunityService       *appServices.CommunityService
	ArchiveService         *appServices.ArchiveService
	SubscriptionService    *appServices.SubscriptionService
	LeaderboardService     *appServices.LeaderboardService
	AnalyticsService       *appServices.AnalyticsService
	AuthController         *appControllers.AuthController
	CityController         *appControllers.CityController
	EventController        *appControllers.EventController
	CommunityController    *appControllers.CommunityController
	VenueController        *appControllers.VenueController
	SubscriptionController *appControllers.SubscriptionController
	LeaderboardController  *appControllers.LeaderboardController
	AnalyticsController    *appControllers.AnalyticsController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
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
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 12*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	notifier := alerts.NewHTTPNotifier(alerts.Config{
		WebhookURL: cfg.Alerts.WebhookURL,
		APIKey:     cfg.Alerts.APIKey,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(deps.JWTService, cfg.Admin.Username, cfg.Admin.Password)
	deps.CityService = appServices.NewCityService(deps.Repos.CityRepository)
	deps.ResolutionService = appServices.NewResolutionService(deps.Repos.CommunityRepository, deps.Repos.DuplicateRepository)
	deps.VenueService = appServices.NewVenueService(deps.Repos.VenueRepository)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.CityRepository,
		deps.ResolutionService,
		deps.VenueService,
		notifier,
		cfg.Server.BaseURL,
	)
	deps.CommunityService = appServices.NewCommunityService(deps.Repos.CommunityRepository, deps.Repos.DuplicateRepository)
	deps.ArchiveService = appServices.NewArchiveService(
		deps.Repos.EventRepository,
		deps.Repos.ArchivedEventRepository,
		deps.Repos.CommunityRepository,
		deps.Repos.VenueRepository,
		deps.Repos.SweepLogRepository,
	)
	deps.SubscriptionService = appServices.NewSubscriptionService(deps.Repos.SubscriptionRepository, deps.Repos.CityRepository)
	deps.LeaderboardService = appServices.NewLeaderboardService(deps.Repos.CommunityRepository, deps.Repos.VenueRepository)
	deps.AnalyticsService = appServices.NewAnalyticsService(
		deps.Repos.EventRepository,
		deps.Repos.ArchivedEventRepository,
		deps.Repos.CommunityRepository,
		deps.Repos.VenueRepository,
		deps.Repos.SubscriptionRepository,
		deps.Repos.CityRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	tokenExp := helpers.ParseDuration(cfg.JWT.TokenExpiration, 12*time.Hour)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, tokenExp)
	deps.CityController = appControllers.NewCityController(deps.CityService)
	deps.EventController = appControllers.NewEventController(deps.EventService, deps.ArchiveService)
	deps.CommunityController = appControllers.NewCommunityController(deps.CommunityService)
	deps.VenueController = appControllers.NewVenueController(deps.VenueService)
	deps.SubscriptionController = appControllers.NewSubscriptionController(deps.SubscriptionService, cfg.Alerts.WebhookSecret)
	deps.LeaderboardController = appControllers.NewLeaderboardController(deps.LeaderboardService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.AnalyticsService)

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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CityController,
		deps.EventController,
		deps.CommunityController,
		deps.VenueController,
		deps.SubscriptionController,
		deps.LeaderboardController,
		deps.AnalyticsController,
		deps.AuthMiddleware,
	)

	return router
}
