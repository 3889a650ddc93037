// @title QuizCraft API
// @version 1.0
// @description Generates quizzes from study materials, manages question pools and exports quizzes.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "quizcraft/cmd/api/docs"
	"quizcraft/internal/adapter"
	"quizcraft/internal/adapter/quizgen"
	"quizcraft/internal/cache"
	"quizcraft/internal/config"
	"quizcraft/internal/database"
	"quizcraft/internal/domain"
	"quizcraft/internal/handler"
	"quizcraft/internal/ingestion"
	"quizcraft/internal/logger"
	"quizcraft/internal/middleware"
	"quizcraft/internal/repository"
	"quizcraft/internal/service"
	"quizcraft/internal/storage"
	"quizcraft/internal/telemetry"
)

const (
	shutdownTimeout = 10 * time.Second
	megabyte        = 1024 * 1024
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, cfg.Env, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	db, err := database.Open(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db.DB, cfg.DB.Driver, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	materialRepo := repository.NewMaterialRepository(db)
	poolRepo := repository.NewPoolRepository(db)
	tagTemplateRepo := repository.NewTagTemplateRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	blobs, err := storage.New(ctx, cfg.Storage, cfg.GCP)
	if err != nil {
		appLogger.Fatal("Failed to initialize blob storage", zap.Error(err))
	}

	extractor := newExtractor(ctx, cfg, appLogger)
	generator, explainer := newGenerators(ctx, cfg, appLogger)

	materialService := service.NewMaterialService(extractor, materialRepo, blobs)
	sessionService := service.NewQuizSessionService(
		service.NewSessionStore(cacheAdapter, cfg.Session.TTL),
		generator,
		explainer,
		service.NewAnalysisService(cacheAdapter),
		materialService,
		quizRepo,
		blobs,
		cfg.LLM.MaxConcurrency,
	)
	poolService := service.NewPoolService(poolRepo, txManager, blobs)
	tagService := service.NewTagService(tagTemplateRepo)

	authService, err := service.NewAuthService(instructorRepo, cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	appLogger.Info("Services initialized")

	maxFileBytes := int64(cfg.Ingestion.MaxFileSizeMB) * megabyte
	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Session:  handler.NewSessionHandler(sessionService, maxFileBytes),
		Material: handler.NewMaterialHandler(materialService, maxFileBytes),
		Pool:     handler.NewPoolHandler(poolService),
		Tag:      handler.NewTagHandler(tagService),
		Quiz:     handler.NewQuizHandler(sessionService),
		Health: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"db":    db.PingContext,
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		}),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimitMB * megabyte,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app.Group("/api"), handlers, authService)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Warn("Failed to flush traces", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// newExtractor enables the Google OCR backends that are configured. Without
// them images are rejected and PDFs rely on their embedded text layer.
func newExtractor(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) *ingestion.Extractor {
	opts := []ingestion.Option{ingestion.WithConcurrency(cfg.Ingestion.MaxConcurrency)}
	if cfg.GCP.VisionEnabled {
		ocr, err := ingestion.NewVisionOCR(ctx, cfg.GCP)
		if err != nil {
			appLogger.Warn("Vision OCR unavailable, image uploads will fail", zap.Error(err))
		} else {
			opts = append(opts, ingestion.WithImageOCR(ocr))
			appLogger.Info("Vision OCR enabled")
		}
	}
	if cfg.GCP.DocumentAIProcessor != "" {
		ocr, err := ingestion.NewDocumentAIOCR(ctx, cfg.GCP)
		if err != nil {
			appLogger.Warn("Document AI unavailable, scanned PDFs will not be OCRed", zap.Error(err))
		} else {
			opts = append(opts, ingestion.WithDocumentOCR(ocr))
			appLogger.Info("Document AI OCR enabled", zap.String("processor", cfg.GCP.DocumentAIProcessor))
		}
	}
	return ingestion.NewExtractor(appLogger, opts...)
}

// newGenerators returns the question generator and, when an LLM client can be
// built, the explainer. The llm source falls back to heuristics on failure.
func newGenerators(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) (domain.QuestionGenerator, domain.Explainer) {
	heuristic := quizgen.NewHeuristicGenerator(appLogger)

	model, err := quizgen.NewModel(ctx, cfg.LLM)
	if err != nil {
		appLogger.Warn("LLM client unavailable, explanations are disabled", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		if cfg.Generator.Source == "llm" {
			appLogger.Warn("Falling back to heuristic question generation")
		}
		return heuristic, nil
	}
	appLogger.Info("LLM client initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))

	explainer := quizgen.NewLLMExplainer(model, cfg.LLM.Provider, cfg.LLM.Temperature, appLogger)
	if cfg.Generator.Source != "llm" {
		return heuristic, explainer
	}
	llmGenerator := quizgen.NewLLMGenerator(model, cfg.LLM.Provider, cfg.LLM.Temperature, appLogger)
	return quizgen.NewFallbackGenerator(llmGenerator, heuristic, appLogger), explainer
}
