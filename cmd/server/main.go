package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/kvnochieng52/flight-distance/config"
	"github.com/kvnochieng52/flight-distance/internal/api/handler"
	"github.com/kvnochieng52/flight-distance/internal/api/middleware"
	"github.com/kvnochieng52/flight-distance/internal/api/router"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	"github.com/kvnochieng52/flight-distance/internal/service"
	"github.com/kvnochieng52/flight-distance/pkg/database"
	"github.com/kvnochieng52/flight-distance/pkg/jwt"
	applogger "github.com/kvnochieng52/flight-distance/pkg/logger"
	"github.com/kvnochieng52/flight-distance/pkg/mailer"
	"github.com/kvnochieng52/flight-distance/pkg/metrics"
	"github.com/kvnochieng52/flight-distance/pkg/redis"
	"github.com/kvnochieng52/flight-distance/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. configuration
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

	logger.Info("starting flight-distance api",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	// 3. error tracking
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			Environment:      cfg.Sentry.Environment,
		}); err != nil {
			logger.Warn("sentry init failed, errors will not be reported", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// 4. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 5. redis is optional: without it there is no catalog cache and throttling stays in-process
	opts := service.Options{Metrics: metrics.New()}
	deps := router.Deps{Metrics: opts.Metrics}

	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running without cache and with local rate limiting", zap.Error(err))
		rdb = nil
		deps.Limiter = middleware.NewLocalLimiter()
	} else {
		opts.Cache = rdb
		deps.Limiter = rdb
	}

	// 6. thumbnail storage and mail
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	deps.Store = store

	if m := mailer.New(&cfg.Mail); m != nil {
		opts.Notifier = m
	} else {
		logger.Info("mail not configured, registration notices disabled")
	}

	// 7. dependency injection: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, store, opts, logger)
	h := handler.NewHandler(svc, cfg.Server.Debug, logger)
	deps.Auth = svc.Auth

	// 8. background jobs
	jobs, err := startJobs(cfg.Auth.PruneSchedule, svc.Auth, logger)
	if err != nil {
		logger.Fatal("schedule jobs failed", zap.Error(err))
	}

	// 9. router
	engine := router.Setup(cfg, h, deps, logger)

	// 10. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
		logger.Error("server shutdown failed", zap.Error(err))
	}

	<-jobs.Stop().Done()

	sqlDB.Close()

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
