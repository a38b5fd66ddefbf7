package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/alumnihub/internal/app/controllers"
	appMigrations "github.com/yigit/alumnihub/internal/app/migrations"
	appRepos "github.com/yigit/alumnihub/internal/app/repositories"
	appRoutes "github.com/yigit/alumnihub/internal/app/routes"
	appServices "github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/config"
	"github.com/yigit/alumnihub/internal/db"
	appMiddleware "github.com/yigit/alumnihub/internal/middleware"
	pkgAuth "github.com/yigit/alumnihub/internal/pkg/auth"
	"github.com/yigit/alumnihub/internal/pkg/cache"
	"github.com/yigit/alumnihub/internal/pkg/email"
	"github.com/yigit/alumnihub/internal/pkg/filestorage"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
	"github.com/yigit/alumnihub/internal/pkg/logger"
	"github.com/yigit/alumnihub/internal/pkg/realtime"
	"github.com/yigit/alumnihub/internal/pkg/validation"
	"github.com/yigit/alumnihub/internal/seed"
)

// DefaultConfigPath is read when no path is given on the command line
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos    *appRepos.Repositories
	Database *db.PostgresDB // nil with the memory driver
	Cache    *cache.Redis
	Hub      *realtime.Hub

	JWTService        *pkgAuth.JWTService
	AuthService       *appServices.AuthService
	DirectoryService  appServices.DirectoryService
	JobService        appServices.JobService
	EventService      appServices.EventService
	StoryService      appServices.StoryService
	MentorshipService appServices.MentorshipService
	MessageService    appServices.MessageService
	AdminService      appServices.AdminService
	WorkflowService   appServices.WorkflowService
	DashboardService  appServices.DashboardService
	MailNotifier      *appServices.MailNotifier

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured store, applies migrations and seeds the
// default data. The returned database is nil for the memory driver.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, *db.PostgresDB, error) {
	var (
		repos    *appRepos.Repositories
		database *db.PostgresDB
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		repos = appRepos.NewMemoryRepositories()

	default:
		lgr.Info().Msg("Establishing database connection...")
		var err error
		database, err = db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		if err := runMigrations(ctx, cfg, database, lgr); err != nil {
			database.Close()
			return nil, nil, err
		}
		repos = appRepos.NewRepositories(database.Pool)
	}

	if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
	if cfg.Server.SeedSampleData {
		if err := seed.CreateSampleData(ctx, repos, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create sample data, proceeding anyway...")
		}
	}

	return repos, database, nil
}

func runMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, logger.Component("migrations"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes services, middleware and controllers.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Repos: repos, Database: database, Logger: lgr}

	storage, err := filestorage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.PublicURL, logger.Component("storage"))
	if err != nil {
		return nil, err
	}

	deps.Hub = realtime.NewHub(logger.Component("realtime"))
	deps.Cache = cache.NewRedis(cache.Options{
		Enabled:  cfg.Redis.Enabled,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger.Component("cache"))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	svcLog := logger.Component("services")
	deps.AuthService = appServices.NewAuthService(repos.Users, deps.JWTService, deps.Hub, svcLog)
	deps.DirectoryService = appServices.NewDirectoryService(repos.Users, svcLog)
	deps.JobService = appServices.NewJobService(repos, deps.Hub, svcLog)
	deps.EventService = appServices.NewEventService(repos, deps.Hub, svcLog)
	deps.StoryService = appServices.NewStoryService(repos, deps.Hub, svcLog)
	deps.MentorshipService = appServices.NewMentorshipService(repos, deps.Hub, svcLog)
	deps.MessageService = appServices.NewMessageService(repos, deps.Hub, svcLog)
	deps.AdminService = appServices.NewAdminService(repos, deps.Cache, cfg.Redis.StatsTTL, deps.Hub, svcLog)
	deps.WorkflowService = appServices.NewWorkflowService(repos, deps.Hub, svcLog)
	deps.DashboardService = appServices.NewDashboardService(repos, svcLog)

	mailer := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, logger.Component("email"))
	deps.MailNotifier = appServices.NewMailNotifier(repos.Users, mailer, svcLog)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, repos.Users)

	// A nil *PostgresDB must not become a non-nil Pinger
	var pinger appControllers.Pinger
	if database != nil {
		pinger = database
	}

	httpLog := logger.Component("http")
	uploads := appControllers.NewUploadController(storage, int64(cfg.Storage.MaxUploadMB)<<20, logger.Component("uploads"))
	wsHandler := realtime.NewHandler(deps.Hub, cfg.Realtime.AllowedOrigins, cfg.Realtime.SendBuffer, logger.Component("websocket"))
	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, httpLog),
		Directory:  appControllers.NewDirectoryController(deps.DirectoryService),
		Job:        appControllers.NewJobController(deps.JobService, httpLog),
		Event:      appControllers.NewEventController(deps.EventService),
		Story:      appControllers.NewStoryController(deps.StoryService),
		Mentorship: appControllers.NewMentorshipController(deps.MentorshipService),
		Message:    appControllers.NewMessageController(deps.MessageService),
		Dashboard:  appControllers.NewDashboardController(deps.DashboardService, deps.AdminService),
		Admin:      appControllers.NewAdminController(deps.AdminService, httpLog),
		Workflow:   appControllers.NewWorkflowController(deps.WorkflowService),
		Health:     appControllers.NewHealthController(pinger, deps.Cache, deps.Hub),
		Upload:     uploads,
		Realtime:   wsHandler,
		UploadDir:  storage.BasePath(),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := validation.RegisterGinValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(
		appMiddleware.RequestID(),
		appMiddleware.AccessLog(logger.Component("access")),
		appMiddleware.Recovery(lgr),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router, nil
}
