package main

import (
	"log"

	"github.com/joho/godotenv"

	"appypay-service/internal/config"
	"appypay-service/internal/database"
	"appypay-service/internal/gateway"
	"appypay-service/internal/repository"
	"appypay-service/internal/services"
)

// Administrative sweep: flips the active flag off every stored token
// whose expiry has passed.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	database.Connect()

	cfg := config.FromEnv()
	tokenStore := repository.NewGormTokenStore(database.DB)
	authService := services.NewAuthService(cfg, tokenStore, gateway.NewClient(cfg))

	n, err := authService.SweepExpired()
	if err != nil {
		log.Fatalf("Token check failed: %v", err)
	}

	log.Printf("Token check completed: %d expired tokens invalidated", n)
}
