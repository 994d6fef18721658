package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/chlyn/COSC369-Final-Project/config"
	"github.com/chlyn/COSC369-Final-Project/internal/api/handler"
	"github.com/chlyn/COSC369-Final-Project/internal/api/middleware"
	"github.com/chlyn/COSC369-Final-Project/internal/api/router"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
	"github.com/chlyn/COSC369-Final-Project/internal/service"
	"github.com/chlyn/COSC369-Final-Project/pkg/cache"
	"github.com/chlyn/COSC369-Final-Project/pkg/database"
	"github.com/chlyn/COSC369-Final-Project/pkg/jwt"
	"github.com/chlyn/COSC369-Final-Project/pkg/llm"
	applogger "github.com/chlyn/COSC369-Final-Project/pkg/logger"
	"github.com/chlyn/COSC369-Final-Project/pkg/redis"
	"github.com/chlyn/COSC369-Final-Project/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config/config.yaml or ./config.yaml)")
	flag.Parse()

	// 1. load .env and config
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting studyplan api",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("semester", cfg.Schedule.CurrentSemester),
	)

	// 3. tracing
	shutdownTracing, err := telemetry.Init(context.Background(), &cfg.Telemetry, logger)
	if err != nil {
		logger.Fatal("init tracing failed", zap.Error(err))
	}

	// 4. database + migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations failed", zap.Error(err))
	}

	// 5. redis is optional: without it logout is a no-op and the catalog
	// cache lives in process memory
	var (
		rdb       *redis.Client
		store     cache.Store
		blacklist service.TokenBlacklist
		checker   middleware.TokenChecker
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, token blacklist disabled", zap.Error(err))
			rdb = nil
		}
	}
	if rdb != nil {
		store, blacklist, checker = rdb, rdb, rdb
	} else {
		store = cache.NewMemory(cfg.Catalog.CacheTTL)
	}

	// 6. jwt + model provider
	jwtMgr := jwt.NewManager(&cfg.Auth)

	model, err := llm.New(&cfg.LLM)
	if err != nil {
		logger.Fatal("init llm provider failed", zap.Error(err))
	}
	if cfg.LLM.APIKey == "" {
		logger.Warn("llm.api_key is empty, chat requests will fail")
	}

	// 7. Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(service.Deps{
		Config:    cfg,
		Repo:      repo,
		JWT:       jwtMgr,
		Blacklist: blacklist,
		Cache:     store,
		LLM:       model,
		Logger:    logger,
	})

	if cfg.Catalog.SeedOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := svc.Catalog.Seed(ctx)
		cancel()
		if err != nil {
			logger.Fatal("seed course catalog failed", zap.Error(err))
		}
		if n == 0 {
			logger.Info("course catalog already populated")
		}
	}

	h := handler.NewHandler(svc)

	// 8. router
	gin.SetMode(gin.ReleaseMode)
	engine, err := router.Setup(cfg, h, jwtMgr, checker, logger)
	if err != nil {
		logger.Fatal("init router failed", zap.Error(err))
	}

	// 9. HTTP server with graceful shutdown. WriteTimeout covers a full
	// model round trip.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer shutdown failed", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database failed", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("close redis failed", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}
