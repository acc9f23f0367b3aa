package main

import (
	"net/http"

	"pos-service/internal/handler"
	mid "pos-service/internal/middleware"
	"pos-service/internal/service"
	"pos-service/internal/store"
	"pos-service/pkg/config"
	"pos-service/pkg/database"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

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
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting pos-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize stores and services. The catalog, history and tax rate are
	// read once at startup; every mutation rewrites the full collection.
	kv := store.NewGormKV(database.GetDB())

	catalogService, err := service.NewCatalogService(store.NewCatalogStore(kv), log)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}
	historyService, err := service.NewHistoryService(store.NewHistoryStore(kv), log)
	if err != nil {
		log.Fatal("Failed to load payment history", zap.Error(err))
	}
	settingsService, err := service.NewSettingsService(store.NewSettingsStore(kv), log)
	if err != nil {
		log.Fatal("Failed to load settings", zap.Error(err))
	}
	paymentService := service.NewPaymentService(catalogService, historyService, settingsService, log)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(paymentService)
	historyHandler := handler.NewHistoryHandler(historyService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog API routes
	catalogAPI := e.Group("/api/catalog")
	catalogAPI.GET("", catalogHandler.GetCatalog)
	catalogAPI.POST("/groups", catalogHandler.CreateGroup)
	catalogAPI.PUT("/groups/:id", catalogHandler.UpdateGroup)
	catalogAPI.DELETE("/groups/:id", catalogHandler.DeleteGroup)
	catalogAPI.POST("/groups/reorder", catalogHandler.ReorderGroups)
	catalogAPI.PUT("/groups/:id/open", catalogHandler.SetGroupOpen)
	catalogAPI.POST("/groups/:id/products", catalogHandler.CreateProduct)
	catalogAPI.PUT("/groups/:id/products/:productId", catalogHandler.UpdateProduct)
	catalogAPI.DELETE("/groups/:id/products/:productId", catalogHandler.DeleteProduct)
	catalogAPI.POST("/products/move", catalogHandler.MoveProduct)
	catalogAPI.POST("/groups/:id/products/:productId/quantity", catalogHandler.AdjustQuantity)
	catalogAPI.POST("/quantities/clear", catalogHandler.ClearQuantities)
	catalogAPI.POST("/custom-items", catalogHandler.CreateCustomItem)

	// Order API routes
	orderAPI := e.Group("/api/order")
	orderAPI.GET("/summary", orderHandler.GetSummary)
	orderAPI.POST("/payments", orderHandler.RecordPayment)

	// History API routes
	historyAPI := e.Group("/api/history")
	historyAPI.GET("", historyHandler.ListPayments)
	historyAPI.GET("/by-date", historyHandler.ListByDate)
	historyAPI.PUT("/events", historyHandler.SetEventName)
	historyAPI.DELETE("/:id", historyHandler.DeletePayment)
	historyAPI.GET("/export", historyHandler.ExportCSV)

	// Settings API routes
	settingsAPI := e.Group("/api/settings")
	settingsAPI.GET("/tax-rate", settingsHandler.GetTaxRate)
	settingsAPI.PUT("/tax-rate", settingsHandler.SetTaxRate)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
