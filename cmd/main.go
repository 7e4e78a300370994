package main

import (
	"context"
	"time"

	"imovel-service/internal/catalog"
	"imovel-service/internal/gateway"
	"imovel-service/internal/handler"
	mid "imovel-service/internal/middleware"
	"imovel-service/internal/model"
	"imovel-service/internal/session"
	"imovel-service/internal/storage"
	"imovel-service/pkg/config"
	"imovel-service/pkg/database"
	"imovel-service/pkg/jwtutil"
	"imovel-service/pkg/logger"
	"imovel-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting imovel-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.Property{},
		&model.City{},
		&model.PropertyType{},
		&model.PriceRange{},
		&model.User{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := handler.SeedAdminUser(appConfig.Admin.Email, appConfig.Admin.Password); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Initialize session store
	sessions := session.NewStore(&appConfig.Redis, appConfig.JWT.RefreshTokenLifetime)
	if err := sessions.Ping(context.Background()); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	log.Info("Session store connected", zap.String("addr", appConfig.Redis.Addr))

	// Initialize image storage
	images, err := storage.NewImageStorage(&appConfig.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	log.Info("Image storage initialized", zap.String("bucket", appConfig.Storage.Bucket))

	// Build the gateway and catalogs, then load the caches
	store := gateway.NewStore(db)
	properties := catalog.NewPropertyCatalog(store)
	cities := catalog.NewCityCatalog(store)
	types := catalog.NewTypeCatalog(store)
	ranges := catalog.NewPriceRangeCatalog(store)

	refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := properties.Refresh(refreshCtx); err != nil {
		log.Fatal("Failed to load property catalog", zap.Error(err))
	}
	if err := cities.Refresh(refreshCtx); err != nil {
		log.Fatal("Failed to load city catalog", zap.Error(err))
	}
	if err := types.Refresh(refreshCtx); err != nil {
		log.Fatal("Failed to load type catalog", zap.Error(err))
	}
	if err := ranges.Refresh(refreshCtx); err != nil {
		log.Fatal("Failed to load price range catalog", zap.Error(err))
	}
	log.Info("Catalogs loaded")

	// Handlers
	authHandler := handler.NewAuthHandler(sessions)
	propertyHandler := handler.NewPropertyHandler(properties, ranges, images)
	cityHandler := handler.NewCityHandler(cities)
	typeHandler := handler.NewTypeHandler(types)
	rangeHandler := handler.NewPriceRangeHandler(ranges)
	inquiryHandler := handler.NewInquiryHandler(properties, appConfig.WhatsApp.Number)
	imageHandler := handler.NewImageHandler(images)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.HealthCheck)

	// Public catalog routes
	e.GET("/api/properties", propertyHandler.List)
	e.GET("/api/properties/featured", propertyHandler.Featured)
	e.GET("/api/properties/:id", propertyHandler.Get)
	e.GET("/api/cities", cityHandler.ListActive)
	e.GET("/api/property-types", typeHandler.ListActive)
	e.GET("/api/price-ranges", rangeHandler.ListActive)

	// Public inquiry routes
	e.POST("/api/inquiries/property", inquiryHandler.Property)
	e.POST("/api/inquiries/negotiation", inquiryHandler.Negotiation)
	e.POST("/api/inquiries/contact", inquiryHandler.Contact)

	// Auth routes
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/refresh", authHandler.Refresh)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/session", authHandler.Session, mid.AuthMiddleware)

	// Admin routes - JWT required on every mutating call
	admin := e.Group("/api/admin", mid.AuthMiddleware)

	admin.POST("/properties", propertyHandler.Create)
	admin.PUT("/properties/:id", propertyHandler.Update)
	admin.DELETE("/properties/:id", propertyHandler.Delete)

	admin.GET("/cities", cityHandler.List)
	admin.POST("/cities", cityHandler.Create)
	admin.DELETE("/cities/:id", cityHandler.Delete)
	admin.PATCH("/cities/:id/active", cityHandler.Toggle)
	admin.PATCH("/cities/active", cityHandler.ToggleAll)

	admin.GET("/property-types", typeHandler.List)
	admin.POST("/property-types", typeHandler.Create)
	admin.DELETE("/property-types/:id", typeHandler.Delete)
	admin.PATCH("/property-types/:id/active", typeHandler.Toggle)
	admin.PATCH("/property-types/active", typeHandler.ToggleAll)

	admin.GET("/price-ranges", rangeHandler.List)
	admin.POST("/price-ranges", rangeHandler.Create)
	admin.DELETE("/price-ranges/:id", rangeHandler.Delete)
	admin.PATCH("/price-ranges/:id/active", rangeHandler.Toggle)
	admin.PATCH("/price-ranges/active", rangeHandler.ToggleAll)

	admin.POST("/images", imageHandler.Upload)
	admin.DELETE("/images", imageHandler.Delete)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
