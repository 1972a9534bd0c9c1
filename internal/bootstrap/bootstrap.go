package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/studentdesk/internal/app/auth"
	appControllers "github.com/yigit/studentdesk/internal/app/controllers"
	appMigrations "github.com/yigit/studentdesk/internal/app/migrations"
	appRepos "github.com/yigit/studentdesk/internal/app/repositories"
	appRoutes "github.com/yigit/studentdesk/internal/app/routes"
	appServices "github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/config"
	"github.com/yigit/studentdesk/internal/db"
	appMiddleware "github.com/yigit/studentdesk/internal/middleware"
	pkgAuth "github.com/yigit/studentdesk/internal/pkg/auth"
	"github.com/yigit/studentdesk/internal/pkg/filestorage"
	"github.com/yigit/studentdesk/internal/pkg/helpers"
	"github.com/yigit/studentdesk/internal/pkg/logger"
	"github.com/yigit/studentdesk/internal/pkg/validation"
	"github.com/yigit/studentdesk/internal/seed"
)

// Database is the opened store together with its repositories
type Database struct {
	Repos *appRepos.Repositories
	// Ping checks connectivity, used by the health endpoint
	Ping  appControllers.PingFunc
	Close func()
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService         appServices.StudentService
	AdminAuthService       appServices.AdminAuthService
	StudentController      *appControllers.StudentController
	AdminStudentController *appControllers.AdminStudentController
	AuthController         *appControllers.AuthController
	HealthController       *appControllers.HealthController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	Logger                 zerolog.Logger
	FileStorage            *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and brings its schema up to date.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*Database, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		lgr.Info().Str("path", cfg.Database.SQLitePath).Msg("Opening SQLite database...")
		sqlite, err := db.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Database{
			Repos: appRepos.NewGormRepositories(sqlite.Gorm),
			Ping: func(ctx context.Context) error {
				sqlDB, err := sqlite.Gorm.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			Close: sqlite.Close,
		}, nil

	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		return &Database{
			Repos: appRepos.NewPostgresRepositories(database),
			Ping:  database.Pool.Ping,
			Close: database.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// BuildDependencies initializes application services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Repos: database.Repos}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.UploadsURL(), cfg.Server.MaxAvatarSize)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:             cfg.JWT.Secret,
		AccessTokenExp:        helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		StudentAccessTokenExp: helpers.ParseDuration(cfg.JWT.StudentAccessTokenExpiration, 30*24*time.Hour),
		RefreshTokenExp:       helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 7*24*time.Hour),
		TokenIssuer:           cfg.JWT.Issuer,
	})

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.StudentRepository, deps.Repos.AdminRepository)

	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.JWTService,
		deps.FileStorage,
		lgr.With().Str("component", "student_service").Logger(),
	)
	deps.AdminAuthService = appServices.NewAdminAuthService(
		deps.Repos.AdminRepository,
		deps.JWTService,
		lgr.With().Str("component", "admin_auth_service").Logger(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, cfg, deps.AdminAuthService, lgr); err != nil {
		return nil, err
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.AdminStudentController = appControllers.NewAdminStudentController(deps.StudentService, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.AdminAuthService, lgr)
	deps.HealthController = appControllers.NewHealthController(database.Ping)

	return deps, nil
}

// multipartOverhead is the body allowance on top of the avatar itself for form fields and part headers
const multipartOverhead = 1 << 20

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.Register(v); err != nil {
			return nil, fmt.Errorf("failed to register validation rules: %w", err)
		}
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxAvatarSize
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Metrics(),
		cors.New(corsConfig(cfg)),
	)

	loginLimiter, err := appMiddleware.RateLimit(cfg.Server.LoginRateLimit)
	if err != nil {
		return nil, err
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.AdminStudentController,
		deps.AuthController,
		deps.HealthController,
		deps.AuthMiddleware,
		loginLimiter,
		appMiddleware.BodyLimit(cfg.Server.MaxAvatarSize+multipartOverhead),
	)

	setupStaticFileServing(router, deps.FileStorage.BasePath(), lgr)
	return router, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", appMiddleware.RequestIDHeader)
	corsCfg.ExposeHeaders = []string{appMiddleware.RequestIDHeader}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}

	origins := cfg.Server.CORSAllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}

// setupStaticFileServing serves the stored avatars under /uploads
func setupStaticFileServing(router *gin.Engine, uploadPath string, lgr zerolog.Logger) {
	if _, err := os.Stat(uploadPath); err != nil {
		lgr.Error().Err(err).Str("path", uploadPath).Msg("Uploads directory not available")
		return
	}

	router.Static("/uploads", uploadPath)
	lgr.Info().Str("path", uploadPath).Msg("Static file serving configured for uploads directory")
}
