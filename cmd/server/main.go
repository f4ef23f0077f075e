package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"localtrade.backend/internal/config"
	"localtrade.backend/internal/infrastructure/datasources"
	"localtrade.backend/internal/infrastructure/repositories"
	"localtrade.backend/internal/interfaces/http/handlers"
	"localtrade.backend/internal/interfaces/http/middleware"
	"localtrade.backend/internal/usecases"
	"localtrade.backend/pkg/geo"
	"localtrade.backend/pkg/logger"
	"localtrade.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = datasources.NewConnection
	migrateDB  = datasources.Migrate
	runServer  = serve
	newRand    = func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return err
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	if redis.Enabled() {
		logger.Info(ctx, "Redis initialized")
	} else {
		logger.Warn(ctx, "REDIS_URL not set, idempotency keys and stats caching are disabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	logger.Info(ctx, "Database connected", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return err
		}
		logger.Info(ctx, "Database migrated")
	}

	r := newRouter(cfg, buildRouteDeps(cfg, db, newRegistry()))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "LocalTrade backend starting", zap.String("port", cfg.Server.Port))
	return runServer(sigCtx, &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	})
}

// newRegistry returns the metrics registry with runtime and process collectors
func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func buildRouteDeps(cfg *config.Config, db *gorm.DB, registry *prometheus.Registry) routeDeps {
	userRepo := repositories.NewUserRepository(db)
	offerRepo := repositories.NewOfferRepository(db)
	dealRepo := repositories.NewDealRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	statsRepo := repositories.NewStatsRepository(db)
	uow := repositories.NewUnitOfWork(db)

	locator := geo.NewFallbackLocator(geo.NewStaticLocator(), newRand())

	authUsecase := usecases.NewAuthUsecase(userRepo)
	userUsecase := usecases.NewUserUsecase(userRepo)
	offerUsecase := usecases.NewOfferUsecase(offerRepo)
	offerMapUsecase := usecases.NewOfferMapUsecase(offerRepo, locator)
	dealUsecase := usecases.NewDealUsecase(dealRepo, offerRepo, uow)
	reportUsecase := usecases.NewReportUsecase(reportRepo, offerRepo, userRepo)
	adminUsecase := usecases.NewAdminUsecase(adminRepo, userRepo, reportRepo, statsRepo, uow, cfg.Admin.StatsCacheTTL)

	return routeDeps{
		authHandler:   handlers.NewAuthHandler(authUsecase),
		userHandler:   handlers.NewUserHandler(userUsecase),
		offerHandler:  handlers.NewOfferHandler(offerUsecase, offerMapUsecase),
		dealHandler:   handlers.NewDealHandler(dealUsecase),
		reportHandler: handlers.NewReportHandler(reportUsecase),
		adminHandler:  handlers.NewAdminHandler(adminUsecase),
		walletAuth:    middleware.WalletAuth(authUsecase, cfg.Auth.AllowAnonymous),
		requireAdmin:  middleware.RequireAdmin(adminUsecase),
		metrics:       middleware.NewMetrics(registry),
		gatherer:      registry,
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
