package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-wine-tasting/config"
	"go-wine-tasting/internal/auth"
	"go-wine-tasting/internal/cache"
	"go-wine-tasting/internal/database"
	"go-wine-tasting/internal/handler"
	"go-wine-tasting/internal/middleware"
	"go-wine-tasting/internal/queue"
	"go-wine-tasting/internal/repository"
	"go-wine-tasting/internal/service"
	"go-wine-tasting/internal/worker"
	"go-wine-tasting/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	defer logger.Sync()
	log := logger.WithComponent("main")

	// .env 不存在時沿用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("failed to load .env", zap.Error(err))
	}

	cfg := config.LoadConfig()
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	evaluationQueue, err := newEvaluationQueue(cfg, rdb)
	if err != nil {
		log.Fatal("failed to initialize evaluation queue", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	wineRepo := repository.NewWineRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	evaluationRepo := repository.NewEvaluationRepository(pool)
	diaryRepo := repository.NewDiaryRepository(pool)
	rankingCache := cache.NewRedisRankingCache(rdb, cfg.Ranking.CacheTTL)

	userService := service.NewUserService(userRepo)
	wineService := service.NewWineService(wineRepo)
	eventService := service.NewEventService(eventRepo, wineRepo, rankingCache)
	evaluationService := service.NewEvaluationService(eventRepo, wineRepo, evaluationRepo, diaryRepo, rankingCache, evaluationQueue)
	rankingService := service.NewRankingService(eventRepo, evaluationRepo, rankingCache)
	diaryService := service.NewDiaryService(diaryRepo)

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		log.Fatal("failed to initialize token manager", zap.Error(err))
	}

	evaluationWorker := worker.NewEvaluationWorker(evaluationService, evaluationQueue)
	if err := evaluationWorker.Start(ctx); err != nil {
		log.Fatal("failed to start evaluation worker", zap.Error(err))
	}

	handler.RegisterValidators()
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	authHandler := handler.NewAuthHandler(userService, tokens)
	v1 := router.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("", middleware.BearerAuth(tokens, userService))
	authHandler.RegisterRoutes(protected)
	handler.NewEventHandler(eventService).RegisterRoutes(protected)
	handler.NewEvaluationHandler(evaluationService, rankingService).RegisterRoutes(protected)
	handler.NewWineHandler(wineService).RegisterRoutes(protected)
	handler.NewDiaryHandler(diaryService).RegisterRoutes(protected)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	evaluationWorker.Wait()
}

func newEvaluationQueue(cfg *config.Config, rdb *redis.Client) (queue.EvaluationQueue, error) {
	if cfg.Queue.Driver == "redis" {
		return queue.NewRedisStreamEvaluationQueue(rdb, cfg.Queue.ConsumerID, &queue.RedisStreamEvaluationQueueConfig{
			ClaimMinIdleTime: cfg.Queue.ClaimMinIdleTime,
			MaxRetryCount:    cfg.Queue.MaxRetryCount,
		})
	}
	return queue.NewEvaluationQueue(cfg.Queue.BufferSize), nil
}
