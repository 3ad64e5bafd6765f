package main

import (
	"context"
	"flag"
	"log"
	"time"

	"inventory-spa/internal/config"
	"inventory-spa/internal/repository"
	"inventory-spa/internal/service"
	"inventory-spa/pkg/database"
	"inventory-spa/pkg/jwt"

	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("username", "", "account to reset")
	password := flag.String("password", "", "new password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	dsn := config.DatabaseURL()
	if dsn == "" {
		log.Fatal("❌ DATABASE_URL (or DB_HOST) is not set")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(dsn)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 3. Reset
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// No tokens are issued here, so the signing key is irrelevant
	auth := service.NewAuthService(repository.NewUserRepo(db), jwt.NewManager("unused", "", time.Hour))
	if err := auth.ResetPassword(ctx, *username, *password); err != nil {
		log.Fatalf("❌ Failed to reset password for %q: %v", *username, err)
	}

	log.Printf("✅ Password for %s has been reset", *username)
}
