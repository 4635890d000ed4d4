package app

import (
	"ai_tutor_backend/internal/config"
	"ai_tutor_backend/internal/controller"
	"ai_tutor_backend/internal/middleware"
	"ai_tutor_backend/internal/repository"
	"ai_tutor_backend/internal/service"
	"ai_tutor_backend/pkg/database"
	"ai_tutor_backend/pkg/logger"
	"ai_tutor_backend/pkg/monitoring"
	"ai_tutor_backend/pkg/security"
	"ai_tutor_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
	cache    *service.ResponseCache
}

type repositories struct {
	session    *repository.SessionRepository
	question   *repository.QuestionRepository
	answer     *repository.AnswerRepository
	area       *repository.KnowledgeAreaRepository
	evaluation *repository.SessionEvaluationRepository
	note       *repository.StudyNoteRepository
}

type services struct {
	ai         *service.AIService
	gateway    *service.AIGateway
	storage    *service.StorageService
	session    *service.SessionService
	question   *service.QuestionService
	answer     *service.AnswerService
	evaluation *service.EvaluationService
	knowledge  *service.KnowledgeService
	teaching   *service.TeachingService
	notes      *service.NotesService
}

type controllers struct {
	session    *controller.SessionController
	question   *controller.QuestionController
	answer     *controller.AnswerController
	evaluation *controller.EvaluationController
	teaching   *controller.TeachingController
	notes      *controller.NotesController
	area       *controller.KnowledgeAreaController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		session:    repository.NewSessionRepository(db),
		question:   repository.NewQuestionRepository(db),
		answer:     repository.NewAnswerRepository(db),
		area:       repository.NewKnowledgeAreaRepository(db),
		evaluation: repository.NewSessionEvaluationRepository(db),
		note:       repository.NewStudyNoteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	a.cache = service.NewResponseCache(time.Duration(cfg.Cache.TTLMinutes)*time.Minute, rdb)

	s.ai = service.NewAIService(cfg.AI)
	s.gateway = service.NewAIGateway(s.ai, a.cache, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.session = service.NewSessionService(repos.session, repos.area, repos.evaluation)
	s.question = service.NewQuestionService(repos.session, repos.question, repos.answer, s.gateway, cfg.Quiz.QuestionCount)
	s.answer = service.NewAnswerService(repos.question, repos.answer, s.gateway)
	s.knowledge = service.NewKnowledgeService(repos.area, nil)
	s.evaluation = service.NewEvaluationService(repos.session, repos.question, repos.answer, repos.evaluation, s.knowledge, s.gateway)
	s.teaching = service.NewTeachingService(s.gateway)
	s.notes = service.NewNotesService(repos.note, s.storage, s.gateway)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		session:    controller.NewSessionController(s.session),
		question:   controller.NewQuestionController(s.question),
		answer:     controller.NewAnswerController(s.answer),
		evaluation: controller.NewEvaluationController(s.evaluation),
		teaching:   controller.NewTeachingController(s.teaching),
		notes:      controller.NewNotesController(s.notes),
		area:       controller.NewKnowledgeAreaController(s.knowledge),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 周期清理过期的 AI 响应缓存
func (a *App) startBackgroundTasks(cfg *config.Config) {
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Cache.SweepMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			a.cache.Sweep()
		}
	}()
}

// ApplyConfig 配置热加载回调，目前只有 AI 参数支持运行时替换
func (a *App) ApplyConfig(cfg *config.Config) {
	a.services.ai.UpdateConfig(cfg.AI)
	logger.Log.Info("Config reloaded", zap.String("model", cfg.AI.Model))
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ai-tutor", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(cfg)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
