package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Diogo19832005/barber-bliss-55-sub000/api/swagger"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/handler"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/middleware"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/repository"
	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/service"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/cache"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/config"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/database"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/export"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/jobs"
	"github.com/Diogo19832005/barber-bliss-55-sub000/pkg/logger"
	corsmiddleware "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/Diogo19832005/barber-bliss-55-sub000/pkg/middleware/requestid"
)

// @title Barber Bliss Booking API
// @version 1.0.0
// @description Multi-tenant barbershop scheduling: working hours, services, slot availability and conflict-safe booking.
// @BasePath /api/v1
// @schemes http https
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	validate := validator.New()

	checks := []handler.ReadinessCheck{{Name: "postgres", Check: func(ctx context.Context) error { return database.Ping(ctx, db) }}}

	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(ctx, cfg.Redis, cfg.Cache.Enabled)
	if err != nil {
		logr.Warn("redis unavailable, running without cache", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		repo := repository.NewCacheRepository(redisClient, "barber-bliss", logr)
		cacheRepo = repo
		checks = append(checks, handler.ReadinessCheck{Name: "redis", Check: repo.Ping, Optional: true})
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ScheduleTTL, logr, cacheRepo != nil)

	notifications := jobs.NewQueue("notifications", service.NotificationSink(logr), jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})
	notifications.Start(ctx)
	defer notifications.Stop()

	userRepo := repository.NewUserRepository(db)
	barberRepo := repository.NewBarberRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	scheduleSvc := service.NewScheduleService(scheduleRepo, cacheSvc, cfg.Cache.ScheduleTTL, validate, logr)
	catalogSvc := service.NewCatalogService(serviceRepo, barberRepo, cacheSvc, cfg.Cache.ScheduleTTL, validate, logr)
	slotSvc := service.NewSlotService(scheduleSvc, catalogSvc, appointmentRepo, metrics, logr, time.Now, cfg.Booking.MaxDaysAhead)
	notifier := service.NewNotificationService(notifications, logr)
	bookingSvc := service.NewBookingService(appointmentRepo, service.NewSQLTxProvider(appointmentRepo.DB()), slotSvc, catalogSvc, notifier, metrics, validate, logr)

	metricsHandler := handler.NewMetricsHandler(metrics, checks...)
	routes := handler.Routes{
		Auth:         handler.NewAuthHandler(authSvc),
		Schedules:    handler.NewScheduleHandler(scheduleSvc),
		Catalog:      handler.NewCatalogHandler(catalogSvc),
		Slots:        handler.NewSlotHandler(slotSvc),
		Appointments: handler.NewAppointmentHandler(bookingSvc, slotSvc),
		Public:       handler.NewPublicHandler(catalogSvc, slotSvc, bookingSvc),
		Metrics:      metricsHandler,
		Tokens:       authSvc,
	}
	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(appointmentRepo, logr, export.NewCSVExporter(0), export.NewPDFExporter())
		routes.Export = handler.NewExportHandler(exportSvc, catalogSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.Register(r.Group(cfg.APIPrefix))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
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
