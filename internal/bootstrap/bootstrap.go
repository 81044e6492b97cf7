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

	appControllers "github.com/rmoreira/capacita/internal/app/controllers"
	appMigrations "github.com/rmoreira/capacita/internal/app/migrations"
	appRepos "github.com/rmoreira/capacita/internal/app/repositories"
	appRoutes "github.com/rmoreira/capacita/internal/app/routes"
	appServices "github.com/rmoreira/capacita/internal/app/services"
	"github.com/rmoreira/capacita/internal/config"
	"github.com/rmoreira/capacita/internal/db"
	appMiddleware "github.com/rmoreira/capacita/internal/middleware"
	pkgAuth "github.com/rmoreira/capacita/internal/pkg/auth"
	"github.com/rmoreira/capacita/internal/pkg/certificate"
	"github.com/rmoreira/capacita/internal/pkg/email"
	"github.com/rmoreira/capacita/internal/pkg/filestorage"
	"github.com/rmoreira/capacita/internal/pkg/helpers"
	"github.com/rmoreira/capacita/internal/pkg/logger"
	"github.com/rmoreira/capacita/internal/pkg/qrcode"
	"github.com/rmoreira/capacita/internal/pkg/whatsapp"
	"github.com/rmoreira/capacita/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos *appRepos.Repositories

	AuthService        *appServices.AuthService
	StudentService     *appServices.StudentService
	CourseService      *appServices.CourseService
	ProfessorService   *appServices.ProfessorService
	CourseHoursService *appServices.CourseHoursService
	CertificateService *appServices.CertificateService
	LeadService        *appServices.LeadService
	SettingsService    *appServices.SettingsService

	AuthController         *appControllers.AuthController
	StudentController      *appControllers.StudentController
	CourseController       *appControllers.CourseController
	ProfessorController    *appControllers.ProfessorController
	CourseHoursController  *appControllers.CourseHoursController
	CertificateController  *appControllers.CertificateController
	VerificationController *appControllers.VerificationController
	LeadController         *appControllers.LeadController
	SettingsController     *appControllers.SettingsController

	AuthMiddleware *appMiddleware.AuthMiddleware
	CSRFMiddleware *appMiddleware.CSRFMiddleware

	JWTService  *pkgAuth.JWTService
	FileStorage *filestorage.LocalStorage
	Logger      zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations
// and seeds default data.
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
		// Seeding problems should not keep the server down
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	fileStorageBaseURL := cfg.Server.BaseURL + "/uploads"
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

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
		LeadInbox: cfg.SMTP.LeadInbox,
	}, lgr)

	whatsappClient := whatsapp.NewClient(cfg.WhatsApp.GatewayURL, cfg.WhatsApp.APIKey, cfg.WhatsAppTimeout(), lgr)

	renderer, err := certificate.NewRenderer(
		cfg.Certificate.TemplatePath,
		cfg.Certificate.FontPath,
		cfg.Certificate.OutputDir,
		cfg.Certificate.JPEGQuality,
	)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize certificate renderer")
		return nil, fmt.Errorf("failed to initialize certificate renderer: %w", err)
	}

	qrGenerator := qrcode.NewGenerator(cfg.Server.BaseURL, cfg.Certificate.QRCodeDir, cfg.Certificate.QRFallbackAPI)
	notifier := appServices.NewDeliveryNotifier(emailService, whatsappClient)

	// Services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.StudentRepository,
		deps.JWTService,
	)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.ProfessorRepository,
		deps.Repos.CourseHoursRepository,
		deps.Repos.TokenRepository,
		deps.FileStorage,
		emailService,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, deps.Repos.StudentRepository)
	deps.ProfessorService = appServices.NewProfessorService(deps.Repos.ProfessorRepository, deps.Repos.StudentRepository, deps.FileStorage)
	deps.CourseHoursService = appServices.NewCourseHoursService(deps.Repos.CourseHoursRepository)
	deps.CertificateService = appServices.NewCertificateService(
		deps.Repos.StudentRepository,
		renderer,
		qrGenerator,
		notifier,
		cfg.Server.BaseURL,
	)
	deps.LeadService = appServices.NewLeadService(deps.Repos.LeadRepository, emailService)
	deps.SettingsService = appServices.NewSettingsService(deps.Repos.SettingsRepository)

	// Middleware
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.CSRFMiddleware = appMiddleware.NewCSRFMiddleware()

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.CSRFMiddleware)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.ProfessorController = appControllers.NewProfessorController(deps.ProfessorService)
	deps.CourseHoursController = appControllers.NewCourseHoursController(deps.CourseHoursService)
	deps.CertificateController = appControllers.NewCertificateController(deps.CertificateService)
	deps.VerificationController = appControllers.NewVerificationController(deps.CertificateService)
	deps.LeadController = appControllers.NewLeadController(deps.LeadService)
	deps.SettingsController = appControllers.NewSettingsController(deps.SettingsService)

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
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CourseController,
		deps.ProfessorController,
		deps.CourseHoursController,
		deps.CertificateController,
		deps.VerificationController,
		deps.LeadController,
		deps.SettingsController,
		deps.AuthMiddleware,
		deps.CSRFMiddleware,
	)

	// Health endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
