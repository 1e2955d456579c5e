package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studyhub/internal/app/controllers"
	appMigrations "github.com/yigit/studyhub/internal/app/migrations"
	appRepos "github.com/yigit/studyhub/internal/app/repositories"
	appRoutes "github.com/yigit/studyhub/internal/app/routes"
	appServices "github.com/yigit/studyhub/internal/app/services"
	"github.com/yigit/studyhub/internal/config"
	"github.com/yigit/studyhub/internal/db"
	appMiddleware "github.com/yigit/studyhub/internal/middleware"
	pkgAuth "github.com/yigit/studyhub/internal/pkg/auth"
	"github.com/yigit/studyhub/internal/pkg/content"
	"github.com/yigit/studyhub/internal/pkg/filestorage"
	"github.com/yigit/studyhub/internal/pkg/gemini"
	"github.com/yigit/studyhub/internal/pkg/logger"
	"github.com/yigit/studyhub/internal/pkg/session"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	Redis        *redis.Client // nil unless sessions live in redis
	Sessions     session.Store
	FileStorage  filestorage.FileStorage
	GeminiClient *gemini.Client
	JWTService   *pkgAuth.JWTService

	AuthService           *appServices.AuthService
	UploadService         *appServices.UploadService
	QuizService           *appServices.QuizService
	StudySessionService   *appServices.StudySessionService
	GoalService           *appServices.GoalService
	RecommendationService *appServices.RecommendationService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	AuthLimiter    *appMiddleware.IPRateLimiter
	Logger         zerolog.Logger
}

// Close releases the external clients held by the dependencies
func (d *Dependencies) Close() {
	if d.GeminiClient != nil {
		if err := d.GeminiClient.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close gemini client")
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Msg("Establishing database connection...")
	dbPool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// setupSessionStore picks the session backend named in the config
func setupSessionStore(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	if strings.ToLower(cfg.Session.Store) == "memory" {
		deps.Logger.Warn().Msg("Using in-memory session store, sessions will not survive a restart")
		deps.Sessions = session.NewMemoryStore()
		return nil
	}

	client, err := db.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	deps.Redis = client
	deps.Sessions = session.NewRedisStore(client)
	return nil
}

// setupFileStorage picks the upload backend named in the config
func setupFileStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (filestorage.FileStorage, error) {
	if strings.ToLower(cfg.Storage.Driver) == "minio" {
		lgr.Info().Str("endpoint", cfg.Storage.MinioEndpoint).Str("bucket", cfg.Storage.MinioBucket).Msg("Using minio file storage")
		return filestorage.NewMinioStorage(ctx, filestorage.MinioConfig{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			Bucket:    cfg.Storage.MinioBucket,
			UseSSL:    cfg.Storage.MinioUseSSL,
		})
	}

	lgr.Info().Str("path", cfg.Server.StoragePath).Msg("Using local file storage")
	return filestorage.NewLocalStorage(cfg.Server.StoragePath)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	if err := setupSessionStore(ctx, cfg, deps); err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize session store")
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	var err error
	deps.FileStorage, err = setupFileStorage(ctx, cfg, lgr)
	if err != nil {
		deps.Close()
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.GeminiClient, err = gemini.NewClient(ctx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.GeminiTimeout(),
	})
	if err != nil {
		deps.Close()
		lgr.Error().Err(err).Msg("Failed to initialize gemini client")
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Session.Secret,
		SessionTTL:  cfg.SessionTTL(),
		TokenIssuer: cfg.Session.Issuer,
	})

	extractor := content.NewExtractor(deps.FileStorage, cfg.Gemini.PDFAsAttachment)
	clock := appServices.Clock(time.Now)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Sessions, deps.JWTService, lgr)
	deps.UploadService = appServices.NewUploadService(deps.Repos.UploadRepository, deps.FileStorage, appServices.UploadLimits{
		MaxFileBytes: cfg.Upload.MaxFileBytes,
		MaxFiles:     cfg.Upload.MaxFiles,
	}, lgr)
	deps.QuizService = appServices.NewQuizService(
		deps.Repos.QuizRepository,
		deps.Repos.QuizResultRepository,
		deps.Repos.UploadRepository,
		extractor,
		deps.GeminiClient,
		clock,
		lgr,
	)
	deps.StudySessionService = appServices.NewStudySessionService(deps.Repos.StudySessionRepository, lgr)
	deps.GoalService = appServices.NewGoalService(deps.Repos.GoalRepository, deps.Repos.StudySessionRepository, clock, lgr)
	deps.RecommendationService = appServices.NewRecommendationService(
		deps.Repos.StudySessionRepository,
		deps.Repos.QuizResultRepository,
		deps.Repos.GoalRepository,
		deps.GeminiClient,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService, cfg.Session.CookieName)
	deps.AuthLimiter = appMiddleware.NewIPRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)

	// Multipart overhead on top of the per-file limit
	maxBody := cfg.Upload.MaxFileBytes*int64(cfg.Upload.MaxFiles) + 1<<20
	deps.Controllers = appRoutes.Controllers{
		Auth: appControllers.NewAuthController(deps.AuthService, appControllers.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
		}, lgr),
		Study:          appControllers.NewStudyController(deps.StudySessionService, deps.GoalService),
		Upload:         appControllers.NewUploadController(deps.UploadService, maxBody, lgr),
		Quiz:           appControllers.NewQuizController(deps.QuizService, lgr),
		Recommendation: appControllers.NewRecommendationController(deps.RecommendationService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.MaxMultipartMemory = cfg.Upload.MaxFileBytes

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.AuthLimiter)
	return router, nil
}
