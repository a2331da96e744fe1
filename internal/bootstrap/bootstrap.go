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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mkaraca/campushub/docs" // Import generated swagger docs
	appControllers "github.com/mkaraca/campushub/internal/app/controllers"
	appMigrations "github.com/mkaraca/campushub/internal/app/migrations"
	appRepos "github.com/mkaraca/campushub/internal/app/repositories"
	appRoutes "github.com/mkaraca/campushub/internal/app/routes"
	appServices "github.com/mkaraca/campushub/internal/app/services"
	"github.com/mkaraca/campushub/internal/config"
	"github.com/mkaraca/campushub/internal/db"
	appMiddleware "github.com/mkaraca/campushub/internal/middleware"
	pkgAuth "github.com/mkaraca/campushub/internal/pkg/auth"
	"github.com/mkaraca/campushub/internal/pkg/filestorage"
	"github.com/mkaraca/campushub/internal/pkg/helpers"
	"github.com/mkaraca/campushub/internal/pkg/logger"
	"github.com/mkaraca/campushub/internal/pkg/mailer"
	"github.com/mkaraca/campushub/internal/pkg/session"
	"github.com/mkaraca/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	InstructorController *appControllers.InstructorController
	RegistrarController  *appControllers.RegistrarController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Sessions             *session.Tracker
	Mailer               mailer.Mailer
	FileStorage          *filestorage.LocalStorage
	Logger               zerolog.Logger
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

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// newMailer selects the mail transport from configuration.
func newMailer(cfg *config.Config, lgr zerolog.Logger) mailer.Mailer {
	switch strings.ToLower(cfg.Mail.Provider) {
	case "smtp":
		return mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUsername,
			Password: cfg.Mail.SMTPPassword,
			UseTLS:   cfg.Mail.SMTPTLS,
		}, lgr)
	case "sendgrid":
		return mailer.NewSendgridMailer(cfg.Mail.SendgridAPIKey, lgr)
	default:
		return mailer.NewConsoleMailer(lgr)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage serves uploads from the static /uploads endpoint.
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	inactivity := helpers.ParseDuration(cfg.Session.InactivityTimeout, 5*time.Minute)
	deps.Sessions = session.NewTracker(inactivity)
	startSessionPurge(deps.Sessions, inactivity)

	deps.Mailer = newMailer(cfg, lgr)
	lgr.Info().Str("provider", strings.ToLower(cfg.Mail.Provider)).Msg("Mail transport configured")

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.Mailer, deps.FileStorage)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Sessions)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.Repos.StudentRepository, deps.Services, lgr)
	deps.InstructorController = appControllers.NewInstructorController(deps.Repos.InstructorRepository, deps.Services, lgr)
	deps.RegistrarController = appControllers.NewRegistrarController(deps.Services.RegistrarService, lgr)

	return deps, nil
}

// startSessionPurge evicts idle session entries in the background so the
// tracker does not grow without bound.
func startSessionPurge(tracker *session.Tracker, timeout time.Duration) {
	go func() {
		ticker := time.NewTicker(timeout)
		defer ticker.Stop()
		for range ticker.C {
			tracker.Purge()
		}
	}()
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
	router.Use(appMiddleware.CORS())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.InstructorController,
		deps.RegistrarController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
