// @title Trailblazer API
// @version 1.0
// @description 徒步步道后端：步道检索、评价、收藏、离线、笔记、活动、社区帖子
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "trailblazer/docs"
	_ "trailblazer/internal/domain/activity"
	_ "trailblazer/internal/domain/favorite"
	_ "trailblazer/internal/domain/note"
	_ "trailblazer/internal/domain/offline"
	_ "trailblazer/internal/domain/park"
	_ "trailblazer/internal/domain/post"
	_ "trailblazer/internal/domain/profile"
	_ "trailblazer/internal/domain/system"
	_ "trailblazer/internal/domain/trail"
	_ "trailblazer/internal/domain/user"
	userRepository "trailblazer/internal/domain/user/repository"
	"trailblazer/internal/pkg/config"
	"trailblazer/internal/pkg/middleware"
	"trailblazer/internal/pkg/registry"
	"trailblazer/pkg/cache"
	"trailblazer/pkg/database"
	"trailblazer/pkg/logger"
	"trailblazer/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	config.LoadConfig()
	cfg := &config.GlobalConfig

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	sqlxDB, err := database.NewSqlx(db, cfg.Database.Driver)
	if err != nil {
		logger.Log.Fatal("failed to build sqlx handle", zap.Error(err))
	}

	var rdb *redis.Client
	var cacheService cache.CacheService
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(cfg.Redis)
		if err != nil {
			logger.Log.Fatal("failed to connect redis", zap.Error(err))
		}
		cacheService = cache.NewRedisCache(rdb, "trailblazer:")
	} else {
		cacheService = cache.NewMemoryCache()
	}

	collector := metrics.GetGlobalCollector()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS))
	r.Use(middleware.MetricsMiddleware(collector))
	r.Use(middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.QPS), cfg.RateLimit.Burst)))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.App.Env != "prod" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	moduleCtx := &registry.ModuleContext{
		DB:      db,
		Sqlx:    sqlxDB,
		Redis:   rdb,
		Cache:   cacheService,
		Router:  r,
		Config:  cfg,
		Metrics: collector,
		Auth:    middleware.AuthMiddleware(userRepository.NewUserRepository(db)),
		Admin:   middleware.AdminMiddleware(),
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("failed to init modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("server shutdown", zap.Error(err))
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
