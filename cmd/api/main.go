package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/textcanvas/backend/internal/config"
	"github.com/textcanvas/backend/internal/handlers"
	"github.com/textcanvas/backend/internal/middleware"
	"github.com/textcanvas/backend/internal/models"
	"github.com/textcanvas/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize Redis (rate limiting; the limiter bypasses when Redis is down)
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize storage
	blobStore := services.NewBlobStore(cfg)
	blobStore.EnsureDirectories()
	if !blobStore.CheckWritable() {
		log.Printf("WARN: storage root %s is not writable", cfg.StoragePath)
	}

	// Pick the record store backend. Memory is the default: designs and
	// the id counter reset on restart.
	var designStore services.DesignStore
	if cfg.StorageBackend == "postgres" {
		db, err := models.InitDB(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := models.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		designStore = services.NewDBDesignStore(db)
	} else {
		designStore = services.NewMemoryDesignStore()
	}

	// Initialize services
	ingestService := services.NewIngestService(blobStore, cfg)
	designService := services.NewDesignService(designStore, ingestService, blobStore)
	exportService := services.NewExportService(cfg)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		body := gin.H{"success": false, "message": "internal server error"}
		if cfg.Env != "production" {
			body["detail"] = fmt.Sprintf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	}))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(blobStore, cfg)
	uploadHandler := handlers.NewUploadHandler(ingestService, cfg)
	designHandler := handlers.NewDesignHandler(designService, exportService, cfg)

	// Uploaded and generated files are served directly by path
	router.Static("/storage", cfg.StoragePath)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Asset uploads (with per-day rate limiting)
		upload := api.Group("/upload")
		upload.Use(middleware.UploadRateLimit(redisClient, cfg))
		{
			upload.POST("/font", uploadHandler.UploadFont)
			upload.POST("/image", uploadHandler.UploadImage)
		}

		// Design records
		api.POST("/designs", designHandler.CreateDesign)
		api.GET("/designs", designHandler.ListDesigns)
		api.GET("/designs/:id", designHandler.GetDesign)
		api.GET("/designs/:id/export.pdf", designHandler.ExportDesign)
		api.DELETE("/designs/:id", designHandler.DeleteDesign)

		// Age-based eviction sweep
		api.DELETE("/cleanup", designHandler.Cleanup)
	}

	// Unknown routes echo the method and path
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
