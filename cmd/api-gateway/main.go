package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/unicourse/planner-api/api/swagger"
	"github.com/unicourse/planner-api/internal/handler"
	"github.com/unicourse/planner-api/internal/middleware"
	"github.com/unicourse/planner-api/internal/repository"
	"github.com/unicourse/planner-api/internal/service"
	"github.com/unicourse/planner-api/pkg/cache"
	"github.com/unicourse/planner-api/pkg/config"
	"github.com/unicourse/planner-api/pkg/database"
	"github.com/unicourse/planner-api/pkg/export"
	"github.com/unicourse/planner-api/pkg/logger"
	corsmiddleware "github.com/unicourse/planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/unicourse/planner-api/pkg/middleware/requestid"
)

// @title Course Planner API
// @version 1.0.0
// @description Two-semester course schedule generation service
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	catalogStore := repository.NewCatalogStore(0)
	var catalogSvc *service.CatalogService
	if cfg.Catalog.Persistence {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
		catalogSvc = service.NewCatalogService(catalogStore, repository.NewDatasetRepository(db), true, metricsSvc, logr)
	} else {
		catalogSvc = service.NewCatalogService(catalogStore, nil, false, metricsSvc, logr)
	}

	plannerSvc := service.NewPlannerService(catalogSvc, nil, cfg.Planner, validate, metricsSvc, logr)
	authSvc := service.NewAuthService(cfg.JWT.Secret)

	var cartSvc *service.CartService
	if cfg.Cart.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, cart lookups will miss", zap.Error(err))
		}
		cartSvc = service.NewCartService(
			repository.NewCartRepository(redisClient, cfg.Cart.TTL, logr),
			validate, metricsSvc, logr)
	}

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(
			export.NewCSVExporter(),
			export.NewPDFExporter(),
			export.NewICSExporter(cfg.Export.ProdID),
			validate, logr)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	catalogHandler := handler.NewCatalogHandler(catalogSvc, cfg.Catalog.MaxUploadBytes)
	catalogRoutes := api.Group("/catalog")
	catalogRoutes.GET("", catalogHandler.List)
	catalogRoutes.GET("/:id", catalogHandler.Get)
	catalogRoutes.GET("/:id/courses", catalogHandler.Courses)

	adminRoutes := catalogRoutes.Group("", middleware.JWT(authSvc), middleware.RequireAdmin())
	adminRoutes.POST("", catalogHandler.Upload)
	adminRoutes.DELETE("/:id", catalogHandler.Delete)

	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	planRoutes := api.Group("/plans")
	planRoutes.POST("/generate", plannerHandler.Generate)
	if exportSvc != nil {
		exportHandler := handler.NewExportHandler(exportSvc)
		planRoutes.POST("/export", exportHandler.Export)
	}

	if cartSvc != nil {
		cartHandler := handler.NewCartHandler(cartSvc)
		cartRoutes := api.Group("/cart")
		cartRoutes.GET("/:hash", cartHandler.Get)
		cartRoutes.PUT("/:hash", cartHandler.Put)
		cartRoutes.DELETE("/:hash", cartHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
