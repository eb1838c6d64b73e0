package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"appypay-service/internal/config"
	"appypay-service/internal/database"
	"appypay-service/internal/gateway"
	"appypay-service/internal/handlers"
	"appypay-service/internal/repository"
	"appypay-service/internal/services"
	"appypay-service/internal/worker"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	cfg := config.FromEnv()
	gw := gateway.NewClient(cfg)

	// Stores
	tokenStore := repository.NewGormTokenStore(db)
	methodStore := repository.NewGormMethodStore(db)
	paymentStore := repository.NewGormPaymentStore(db)
	sysStore := repository.NewGormSysStore(db)
	logStore := repository.NewGormRequestLogStore(db)

	// Services
	authService := services.NewAuthService(cfg, tokenStore, gw)
	idService := services.NewIdService(sysStore)
	paymentService := services.NewPaymentService(cfg, authService, idService, gw, methodStore, paymentStore)
	paymentService.Logs = logStore

	syncService := services.NewSyncService(authService, gw, sysStore, methodStore)
	syncService.Updater = services.NewStatusUpdater(db)

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	enqueuer := worker.NewEnqueuer(asynq.RedisClientOpt{Addr: redisAddr})
	defer enqueuer.Close()
	paymentService.Enqueuer = enqueuer

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(methodStore, syncService, authService)
	adminHandler.Enqueuer = enqueuer

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To AppyPay service",
		})
	})

	r.POST("/payments", paymentHandler.CreatePayment)
	r.GET("/payments", paymentHandler.ListPayments)
	r.GET("/payments/:merchantId", paymentHandler.GetPayment)
	r.POST("/payments/sync", adminHandler.SyncPayments)
	r.GET("/payment-methods", adminHandler.ListMethods)
	r.POST("/payment-methods/sync", adminHandler.RefreshMethods)
	r.POST("/tokens/check", adminHandler.CheckTokens)

	// Start Cron Schedulers
	syncService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
