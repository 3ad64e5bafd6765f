package main

import (
	"context"
	"log"
	"os"
	"time"

	"inventory-spa/internal/config"
	"inventory-spa/pkg/database"

	"github.com/joho/godotenv"
)

// check-db connects to the configured database and exits 0 when it answers.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	dsn := config.DatabaseURL()
	if dsn == "" {
		log.Println("❌ DATABASE_URL (or DB_HOST) is not set")
		os.Exit(1)
	}

	// 2. Connect
	db, err := database.ConnectDB(dsn)
	if err != nil {
		log.Printf("❌ Connection error: %v", err)
		os.Exit(1)
	}

	// 3. Ping
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		log.Printf("❌ Ping failed: %v", err)
		os.Exit(1)
	}

	log.Println("✅ Connected to database")
}
