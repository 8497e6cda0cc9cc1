package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"fundamentals-etl/internal/config"
	"fundamentals-etl/internal/db"
	"fundamentals-etl/internal/seed"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML run config")
	flag.Parse()

	// Load .env file if it exists (local dev)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed")

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := db.NewRepository(pool)

	client := &http.Client{Timeout: cfg.Timeout()}
	companies, err := seed.FetchConstituents(ctx, client, cfg.Seed.ConstituentsURL)
	if err != nil {
		log.Fatalf("Failed to fetch constituents: %v", err)
	}
	log.Printf("Fetched %d constituents", len(companies))

	added, err := repo.UpsertCompanies(ctx, companies)
	if err != nil {
		log.Fatalf("Failed to seed companies: %v", err)
	}

	log.Printf("Seeded %d new companies (out of %d)", added, len(companies))
}
