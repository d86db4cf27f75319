package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/api"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/auth"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/chat"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/config"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/database"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/logger"
)

func main() {
	log := logger.New("server")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Set Gin mode based on environment
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	auth.InitJWTKey([]byte(cfg.JWTSecret))

	// Connect to MongoDB
	db, err := database.NewMongoDB(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Error("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	// Chat services
	conversationService := chat.NewConversationService(db, db, cfg)
	messageService := chat.NewMessageService(db, db)

	// Create API handlers
	authHandler := api.NewAuthHandler(db, cfg)
	conversationHandler := api.NewConversationHandler(conversationService)
	chatHandler := api.NewChatHandler(conversationService, messageService)
	propertyHandler := api.NewPropertyHandler(db)
	adminHandler := api.NewAdminHandler(db)

	// Initialize router with default middleware (logger and recovery)
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes (no authentication required)
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	// Listings are public, but admins see unapproved ones, so the route
	// resolves a session when one is present.
	router.GET("/api/properties", api.OptionalAuthMiddleware(), propertyHandler.ListProperties)
	router.GET("/api/properties/:propertyID", propertyHandler.GetProperty)

	// Protected routes (authentication required)
	authorized := router.Group("/api")
	authorized.Use(api.AuthMiddleware())
	{
		authorized.GET("/auth/me", authHandler.GetMe)
		authorized.POST("/auth/logout", authHandler.Logout)
		authorized.GET("/users", authHandler.GetAllUsers)

		// Conversation routes (schema-rich interface)
		authorized.GET("/conversations", conversationHandler.ListConversations)
		authorized.POST("/conversations", conversationHandler.CreateConversation)

		// Multiplexed chat actions used by the widgets
		authorized.POST("/chat", chatHandler.HandleAction)

		// Listings
		authorized.POST("/properties", propertyHandler.CreateProperty)
		authorized.PUT("/properties/:propertyID/approval", propertyHandler.ApproveProperty)

		// Back office
		authorized.GET("/admin/overview", adminHandler.Overview)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Configure HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give the server 5 seconds to finish processing remaining requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited properly")
}
