package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"quiz_room_hub/internal/config"
	"quiz_room_hub/internal/controller"
	"quiz_room_hub/internal/middleware"
	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/repository"
	"quiz_room_hub/internal/service"
	"quiz_room_hub/pkg/configwatcher"
	"quiz_room_hub/pkg/database"
	"quiz_room_hub/pkg/logger"
	"quiz_room_hub/pkg/monitoring"
	"quiz_room_hub/pkg/security"
	"quiz_room_hub/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	profile    *repository.ProfileRepository
	classroom  *repository.ClassroomRepository
	enrollment *repository.EnrollmentRepository
	post       *repository.PostRepository
	comment    *repository.CommentRepository
	quiz       *repository.QuizRepository
	submission *repository.SubmissionRepository
	token      *repository.TokenRepository
}

type services struct {
	auth       *service.AuthService
	profile    *service.ProfileService
	permission *service.PermissionService
	classroom  *service.ClassroomService
	post       *service.PostService
	quiz       *service.QuizService
	submission *service.SubmissionService
}

type controllers struct {
	auth       *controller.AuthController
	profile    *controller.ProfileController
	classroom  *controller.ClassroomController
	post       *controller.PostController
	quiz       *controller.QuizController
	submission *controller.SubmissionController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		profile:    repository.NewProfileRepository(db),
		classroom:  repository.NewClassroomRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		post:       repository.NewPostRepository(db),
		comment:    repository.NewCommentRepository(db),
		quiz:       repository.NewQuizRepository(db),
		submission: repository.NewSubmissionRepository(db),
		token:      repository.NewTokenRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, tokens service.TokenStore) *services {
	s := &services{}

	s.permission = service.NewPermissionService(repos.profile, repos.enrollment)
	s.auth = service.NewAuthService(repos.user, repos.profile, tokens, cfg)
	s.profile = service.NewProfileService(repos.profile, repos.user)
	s.classroom = service.NewClassroomService(repos.classroom, repos.enrollment, repos.profile, s.permission)
	s.post = service.NewPostService(repos.post, repos.comment, repos.classroom, s.permission)
	s.quiz = service.NewQuizService(repos.quiz, repos.classroom, s.permission)
	s.submission = service.NewSubmissionService(repos.submission, repos.quiz, repos.classroom, s.permission)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		profile:    controller.NewProfileController(s.profile),
		classroom:  controller.NewClassroomController(s.classroom),
		post:       controller.NewPostController(s.post),
		quiz:       controller.NewQuizController(s.quiz),
		submission: controller.NewSubmissionController(s.submission),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp connects to the configured database and Redis and builds the router.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated")
	}

	var rdb *redis.Client
	var tokens service.TokenStore
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
		tokens = service.NewRedisTokenStore(rdb)
	} else {
		tokens = service.NewDBTokenStore(repository.NewTokenRepository(db))
	}

	app := NewAppWithStore(cfg, db, tokens)
	app.Redis = rdb

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.RegisterConfigCallback(logger.SetLevel)

	return app
}

// NewAppWithStore builds the router on an already opened database.
func NewAppWithStore(cfg *config.Config, db *gorm.DB, tokens service.TokenStore) *App {
	app := &App{
		Config: cfg,
		DB:     db,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, tokens)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

// CreateAdmin creates a staff superuser account from the command line.
func (a *App) CreateAdmin(email, password string) (*model.User, error) {
	return a.services.auth.CreateAdmin(email, password)
}

func (a *App) watchConfig(ctx context.Context) {
	err := configwatcher.WatchConfig(ctx, configDir+"/config.yaml", func(cfg *config.Config) {
		for _, callback := range a.configCallbacks {
			callback(cfg)
		}
	})
	if err != nil {
		logger.Log.Warn("Config watcher stopped", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go a.watchConfig(watchCtx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
