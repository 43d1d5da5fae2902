package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/luxride/admin-backend/internal/config"
	"github.com/luxride/admin-backend/internal/database"
	"github.com/luxride/admin-backend/internal/handlers"
	"github.com/luxride/admin-backend/internal/middleware"
	"github.com/luxride/admin-backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database instance", zap.Error(err))
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := services.InitRedis(cfg.RedisURL); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	// Push notifications are optional; startup continues without them.
	if err := services.InitFirebase(cfg.FirebaseCredentialsPath, logger); err != nil {
		logger.Warn("Firebase initialization warning", zap.Error(err))
	}

	if err := services.InitStorage(cfg, logger); err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Booking change feed: Redis pub/sub -> in-memory projection -> WebSocket
	hub := services.NewHub(logger)
	go hub.Run()

	feed := services.NewBookingFeed(hub, logger)
	go feed.Run(context.Background())

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	// Locally stored report exports
	r.Static("/exports", "/app/exports")

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/auth/login", handlers.Login(db))

		// Customer-facing cancel; identity is carried by customerUid and
		// checked against the booking's owner.
		api.POST("/bookings/:id/cancel", handlers.CancelBookingCustomer(db, logger))

		// Admin routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", handlers.Me(db))
			protected.GET("/ws", handlers.WebSocketHandler(hub))

			admin := protected.Group("/admin")
			{
				admin.GET("/bookings", handlers.ListBookings(db))
				admin.GET("/bookings/:id", handlers.GetBooking(db))
				admin.POST("/bookings/:id/cancel", handlers.CancelBookingAdmin(db, logger))

				admin.GET("/customers", handlers.ListCustomers(db))
				admin.GET("/customers/:id", handlers.GetCustomer(db))
				admin.GET("/drivers", handlers.ListDrivers(db))

				admin.GET("/earnings/summary", handlers.EarningsSummary(db))
				admin.GET("/earnings/ranking", handlers.EarningsRanking(db))
				admin.GET("/earnings/export", handlers.ExportEarnings(db))

				admin.GET("/dashboard/stats", handlers.DashboardStats(db))

				admin.GET("/settings/auto-dispatch-24-7", handlers.GetAutoDispatch(db, logger))
				admin.PUT("/settings/auto-dispatch-24-7", handlers.UpdateAutoDispatch(db, logger))
			}

			chat := protected.Group("/chat")
			{
				chat.PUT("/mark-read/:bookingId", handlers.MarkMessagesRead(db))
				chat.GET("/:bookingId/messages", handlers.GetMessages(db))
			}
		}
	}

	logger.Info("Starting admin backend", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
