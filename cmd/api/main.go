package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/apexstock/apex-stock-api/docs" // Swagger docs
	"github.com/apexstock/apex-stock-api/internal/config"
	"github.com/apexstock/apex-stock-api/internal/database"
	"github.com/apexstock/apex-stock-api/internal/handlers"
	"github.com/apexstock/apex-stock-api/internal/middleware"
	"github.com/apexstock/apex-stock-api/internal/repository"
	"github.com/apexstock/apex-stock-api/internal/services"
	"github.com/apexstock/apex-stock-api/pkg/logger"
)

// @title Apex Stock API
// @version 1.0
// @description REST API for the Apex Stock inventory management system

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Run schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Database schema up to date")

	// Initialize repositories and transaction manager
	repos := repository.NewRepositories(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	svcs := services.NewServices(repos, txManager, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, repos, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, repos *repository.Repositories, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.GET("/auth/me", h.Auth.Me)
			protected.POST("/auth/change-password", h.Auth.ChangePassword)

			// Inventory (any authenticated user)
			inventory := protected.Group("/inventory")
			{
				// Static routes first so low-stock/stats are not matched as :item_id
				inventory.GET("/low-stock", h.Inventory.LowStock)
				inventory.GET("/stats", h.Inventory.Stats)
				inventory.GET("", h.Inventory.Index)
				inventory.POST("", h.Inventory.Create)
				inventory.GET("/:item_id", h.Inventory.Show)
				inventory.PUT("/:item_id", h.Inventory.Update)
				inventory.DELETE("/:item_id", h.Inventory.Delete)
			}

			// Suppliers (any authenticated user)
			suppliers := protected.Group("/suppliers")
			{
				suppliers.GET("", h.Supplier.Index)
				suppliers.POST("", h.Supplier.Create)
				suppliers.GET("/:supplier_id", h.Supplier.Show)
				suppliers.PUT("/:supplier_id", h.Supplier.Update)
				suppliers.DELETE("/:supplier_id", h.Supplier.Delete)
				suppliers.GET("/:supplier_id/items", h.Supplier.Items)
			}

			// Admin-only routes. Role is re-read from the store on every
			// request, so a downgrade takes effect immediately.
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin(repos.User))
			{
				admin.GET("/users/stats", h.User.Stats)
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.GET("/users/:user_id", h.User.Show)
				admin.PUT("/users/:user_id", h.User.Update)
				admin.DELETE("/users/:user_id", h.User.Delete)

				reports := admin.Group("/reports")
				{
					reports.GET("/inventory-pdf", h.Report.InventoryPDF)
					reports.GET("/inventory-csv", h.Report.InventoryCSV)
					reports.GET("/inventory-xlsx", h.Report.InventoryXLSX)
					reports.GET("/low-stock-pdf", h.Report.LowStockPDF)
					reports.GET("/suppliers-csv", h.Report.SuppliersCSV)
					reports.GET("/activity-logs", h.Report.ActivityLogs)
				}
			}
		}
	}

	return router
}
