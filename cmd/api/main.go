package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ssis-api/api/swagger"
	"github.com/noah-isme/ssis-api/internal/handler"
	internalmiddleware "github.com/noah-isme/ssis-api/internal/middleware"
	"github.com/noah-isme/ssis-api/internal/querybuilder"
	"github.com/noah-isme/ssis-api/internal/repository"
	"github.com/noah-isme/ssis-api/internal/service"
	"github.com/noah-isme/ssis-api/pkg/cache"
	"github.com/noah-isme/ssis-api/pkg/config"
	"github.com/noah-isme/ssis-api/pkg/database"
	"github.com/noah-isme/ssis-api/pkg/export"
	"github.com/noah-isme/ssis-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ssis-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ssis-api/pkg/middleware/requestid"
)

// @title SSIS API
// @version 1.0.0
// @description Student records API over colleges, programs and students
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	sqlDB, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, sqlDB, logr); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	dialect, err := querybuilder.DialectFor(sqlDB.DriverName())
	if err != nil {
		return err
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	db := repository.NewDB(sqlDB, dialect)
	if metrics != nil {
		db = db.WithObserver(metrics)
	}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, listing cache disabled", zap.Error(err))
		} else {
			redisRepo := repository.NewCacheRepository(client)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.Prefix, cfg.Cache.TTL, logr, cacheRepo != nil)

	colleges := repository.NewCollegeRepository(db)
	programs := repository.NewProgramRepository(db)
	students := repository.NewStudentRepository(db)
	users := repository.NewUserRepository(db)

	validate := service.NewValidator()
	opts := service.UpdateOptions{RejectUnknownFields: cfg.Updates.RejectUnknownFields}

	collegeSvc := service.NewCollegeService(colleges, programs, db, cacheSvc, validate, logr, opts)
	programSvc := service.NewProgramService(programs, colleges, students, db, cacheSvc, validate, logr, opts)
	studentSvc := service.NewStudentService(students, programs, db, cacheSvc, validate, logr, opts)
	authSvc := service.NewAuthService(users, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	exportSvc := service.NewExportService(export.NewCSVExporter(), export.NewPDFExporter())

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics, "/metrics", "/health"))

	pageSize := cfg.Listing.DefaultPageSize
	handler.Routes{
		Auth:          handler.NewAuthHandler(authSvc, cfg.Cookie),
		Colleges:      handler.NewCollegeHandler(collegeSvc, exportSvc, pageSize),
		Programs:      handler.NewProgramHandler(programSvc, exportSvc, pageSize),
		Students:      handler.NewStudentHandler(studentSvc, exportSvc, pageSize),
		Metrics:       handler.NewMetricsHandler(metrics, sqlDB),
		RequireAuth:   internalmiddleware.JWT(authSvc, cfg.Cookie.Name),
		ExposeMetrics: metrics != nil,
	}.Register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", sqlDB.DriverName())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
