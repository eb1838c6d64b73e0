package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"appypay-service/internal/config"
	"appypay-service/internal/consumers"
	"appypay-service/internal/database"
	"appypay-service/internal/gateway"
	"appypay-service/internal/repository"
	"appypay-service/internal/services"
	"appypay-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	cfg := config.FromEnv()
	gw := gateway.NewClient(cfg)

	tokenStore := repository.NewGormTokenStore(db)
	methodStore := repository.NewGormMethodStore(db)
	sysStore := repository.NewGormSysStore(db)

	authService := services.NewAuthService(cfg, tokenStore, gw)
	syncService := services.NewSyncService(authService, gw, sysStore, methodStore)
	syncService.Updater = services.NewStatusUpdater(db)

	// Processor
	processor := consumers.NewSyncProcessor(syncService, authService)

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
