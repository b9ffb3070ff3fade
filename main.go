package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"milmed-app-server/internal/config"
	"milmed-app-server/internal/logger"
	"milmed-app-server/internal/middleware"
	"milmed-app-server/internal/models"
	"milmed-app-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env is fine in production.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize the embedded store
	db, err := models.InitDB(models.DatabaseConfig{
		Path:                   cfg.Database.Path,
		BootstrapAdminPassword: cfg.BootstrapAdminPassword,
	})
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zlog))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - repositories and handlers are created inside
	if err := routes.SetupRoutes(router, db, cfg, zlog); err != nil {
		zlog.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
