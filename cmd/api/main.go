package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/coursematch/recoengine/docs" // swagger docs

	"github.com/coursematch/recoengine/internal/config"
	"github.com/coursematch/recoengine/internal/platform/auth"
	httpPlatform "github.com/coursematch/recoengine/internal/platform/http"
	"github.com/coursematch/recoengine/internal/platform/logger"
	"github.com/coursematch/recoengine/internal/platform/postgres"
	"github.com/coursematch/recoengine/internal/platform/redis"
	sentryPlatform "github.com/coursematch/recoengine/internal/platform/sentry"

	authHandler "github.com/coursematch/recoengine/modules/auth/handler"
	authRepo "github.com/coursematch/recoengine/modules/auth/repository"
	authService "github.com/coursematch/recoengine/modules/auth/service"
	userRepo "github.com/coursematch/recoengine/modules/users/repository"

	catalogueRepo "github.com/coursematch/recoengine/modules/catalogue/repository"
	catalogueService "github.com/coursematch/recoengine/modules/catalogue/service"

	configRepo "github.com/coursematch/recoengine/modules/config/repository"
	configService "github.com/coursematch/recoengine/modules/config/service"

	feedbackHandler "github.com/coursematch/recoengine/modules/feedback/handler"
	feedbackRepo "github.com/coursematch/recoengine/modules/feedback/repository"
	feedbackService "github.com/coursematch/recoengine/modules/feedback/service"

	recommendHandler "github.com/coursematch/recoengine/modules/recommend/handler"
	recommendService "github.com/coursematch/recoengine/modules/recommend/service"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Course Recommendation Engine API
// @version 1.0
// @description Scores and ranks a UK secondary-school student's A-level profile against a university course catalogue.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@coursematch.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	if err := sentryPlatform.Init(cfg.Sentry); err != nil {
		appLogger.Warn("Failed to initialize Sentry, request-fatal errors will not be reported", zap.Error(err))
	}
	defer sentryPlatform.Flush(2 * time.Second)

	appLogger.Info("Starting course recommendation engine",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// Initialize PostgreSQL
	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()
	appLogger.Info("Connected to PostgreSQL")

	// Run database migrations (MANDATORY: must run before HTTP server starts)
	migrationsPath := "./migrations"
	if err := postgres.RunMigrations(ctx, cfg.Database, appLogger, migrationsPath); err != nil {
		appLogger.Fatal("Failed to run database migrations",
			zap.Error(err),
			zap.String("migrations_path", migrationsPath),
		)
	}

	// Initialize Redis (carries the configuration reload pub/sub signal, A6)
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(httpPlatform.RequestIDMiddleware())
	router.Use(httpPlatform.LoggerMiddleware(appLogger))
	router.Use(httpPlatform.CORSMiddleware())

	// Swagger documentation (available in development)
	if cfg.Server.Env != "production" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		appLogger.Info("Swagger UI available at /swagger/index.html")
	}

	// Health check endpoint
	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))

	// Ping endpoint
	router.GET("/ping", pingHandler)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	authMiddleware := auth.AuthMiddleware(jwtManager)
	optionalAuthMiddleware := auth.OptionalAuthMiddleware(jwtManager)

	// Initialize repositories
	userRepository := userRepo.NewUserRepository(pgClient.Pool)
	tokenRepository := authRepo.NewRefreshTokenRepository(pgClient.Pool)
	configRepository := configRepo.NewConfigRepository(pgClient.Pool)
	catalogueRepository := catalogueRepo.NewCatalogueRepository(pgClient.Pool)
	feedbackRepository := feedbackRepo.NewFeedbackRepository(pgClient.Pool)

	// Configuration Store (C1): loaded and validated once at startup,
	// frozen for the lifetime of every request until a reload swaps it.
	configStore := configService.NewConfigStore(configRepository)
	if err := configStore.Load(ctx); err != nil {
		appLogger.Fatal("Failed to load engine configuration", zap.Error(err))
	}
	appLogger.Info("Engine configuration loaded")

	reloadCtx, cancelReload := context.WithCancel(context.Background())
	defer cancelReload()
	go configService.WatchReload(reloadCtx, redisClient.Client, configStore, appLogger)

	// Initialize services
	authSvc := authService.NewAuthService(
		userRepository,
		tokenRepository,
		jwtManager,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	catalogueSvc := catalogueService.NewCatalogueService(catalogueRepository)
	feedbackSvc := feedbackService.NewFeedbackService(feedbackRepository)
	recommendSvc := recommendService.NewRecommendService(configStore, catalogueSvc, feedbackRepository, appLogger)

	// Initialize handlers
	authHdl := authHandler.NewAuthHandler(authSvc)
	feedbackHdl := feedbackHandler.NewFeedbackHandler(feedbackSvc)
	recommendHdl := recommendHandler.NewRecommendHandler(recommendSvc, catalogueSvc)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authHdl.RegisterRoutes(v1)
		recommendHdl.RegisterRoutes(v1, optionalAuthMiddleware, authMiddleware)
		feedbackHdl.RegisterRoutes(v1, authMiddleware)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheckHandler godoc
// @Summary Health Check
// @Description Check the health status of the application and its dependencies
// @Tags system
// @Produce json
// @Success 200 {object} http.HealthResponse
// @Router /health [get]
func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpPlatform.RespondWithHealth(c, services)
	}
}

// pingHandler godoc
// @Summary Ping
// @Description Simple ping endpoint to check if the API is responding
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
