package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/fitnesshub/internal/app/auth"
	appControllers "github.com/yigit/fitnesshub/internal/app/controllers"
	appJobs "github.com/yigit/fitnesshub/internal/app/jobs"
	appMigrations "github.com/yigit/fitnesshub/internal/app/migrations"
	appRepos "github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/app/repositories/memory"
	appRoutes "github.com/yigit/fitnesshub/internal/app/routes"
	appServices "github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/config"
	"github.com/yigit/fitnesshub/internal/db"
	appMiddleware "github.com/yigit/fitnesshub/internal/middleware"
	pkgAuth "github.com/yigit/fitnesshub/internal/pkg/auth"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"github.com/yigit/fitnesshub/internal/pkg/payment"
	"github.com/yigit/fitnesshub/internal/pkg/websocket"
	"github.com/yigit/fitnesshub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Hub            *websocket.Hub
	Gateway        payment.Gateway
	Controllers    *appRoutes.Controllers
	Reconciler     *appJobs.EnrollmentReconciler
	Logger         zerolog.Logger
}

// Store is the selected persistence backend
type Store struct {
	Repos  *appRepos.Repositories
	Mongo  *db.MongoDB // nil for the memory driver
	Driver string
}

// Close releases the backend connection, if any
func (s *Store) Close(ctx context.Context) error {
	if s.Mongo == nil {
		return nil
	}
	return s.Mongo.Close(ctx)
}

// LoadConfigAndSetupLogger reads .env and the config file, then configures the global logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// .env is optional; real environment variables always win
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file loaded")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured backend, ensures indexes and seeds the bootstrap admin.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	store := &Store{Driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store; data is lost on restart")
		store.Repos = memory.NewRepositories()

	default:
		lgr.Info().Str("database", cfg.Database.Name).Msg("Establishing database connection...")
		mongoDB, err := db.NewMongoDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		if err := appMigrations.NewMigrator(mongoDB.Database, lgr).Migrate(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			_ = mongoDB.Close(ctx)
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}

		store.Mongo = mongoDB
		store.Repos = appRepos.NewRepositories(mongoDB.Database)
	}

	account := seed.AdminAccount{Email: cfg.Seed.AdminEmail, Name: cfg.Seed.AdminName}
	if err := seed.CreateDefaultAdmin(ctx, store.Repos.Users, account, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return store, nil
}

// BuildDependencies initializes services, middleware and controllers over the store.
// A nil gateway builds the Stripe client from the payment config.
func BuildDependencies(cfg *config.Config, store *Store, gateway payment.Gateway, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Repos: store.Repos}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.Expiration, pkgAuth.DefaultTokenExpiry),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.Users, cfg.Auth.LegacyInvertedAdminCheck)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	if gateway == nil {
		if cfg.Payment.StripeSecretKey == "" {
			lgr.Warn().Msg("PAYMENT_SECRET_KEY not set; payment intents will be rejected by the gateway")
		}
		gateway = payment.NewStripeGateway(payment.StripeConfig{
			SecretKey: cfg.Payment.StripeSecretKey,
			BaseURL:   cfg.Payment.StripeBaseURL,
			Timeout:   helpers.ParseDuration(cfg.Payment.Timeout, 15*time.Second),
		})
	}
	deps.Gateway = gateway

	deps.Hub = websocket.NewHub(logger.Component("class-feed"))
	deps.Services = appServices.NewServices(deps.Repos, deps.Gateway, cfg.Payment.Currency, deps.Hub)

	var pinger appControllers.Pinger
	if store.Mongo != nil {
		pinger = store.Mongo
	}

	deps.Controllers = &appRoutes.Controllers{
		Token:      appControllers.NewTokenController(deps.JWTService),
		Class:      appControllers.NewClassController(deps.Services.Classes),
		Cart:       appControllers.NewCartController(deps.Services.Cart),
		Payment:    appControllers.NewPaymentController(deps.Services.Payments, deps.Services.Checkout),
		User:       appControllers.NewUserController(deps.Services.Users),
		Instructor: appControllers.NewInstructorController(deps.Services.Instructors, deps.Services.Enrollments),
		Admin:      appControllers.NewAdminController(deps.Services.Admin),
		Health:     appControllers.NewHealthController(pinger, store.Driver),
		Feed:       websocket.NewHandler(deps.Hub, logger.Component("class-feed")),
	}

	deps.Reconciler = appJobs.NewEnrollmentReconciler(deps.Repos.Classes, deps.Repos.Enrollments, logger.Component("reconciler"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.Recovery(),
		cors.New(corsConfig(cfg.Server.CORSOrigins)),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", appMiddleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", appMiddleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return c
}
