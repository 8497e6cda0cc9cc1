package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fundamentals-etl/internal/config"
	"fundamentals-etl/internal/db"
	"fundamentals-etl/internal/provider"
	"fundamentals-etl/internal/snapshot"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML run config")
	tickerFlag := flag.String("ticker", "", "comma-separated tickers (default: all companies in the registry)")
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
		log.Printf("Warning: Could not run migrations: %v", err)
	} else {
		log.Println("Migrations completed")
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	repo := db.NewRepository(pool)

	timeout := cfg.Timeout()
	fetcher := provider.NewFetcher(
		provider.NewFinnhubClient(cfg.Providers.FinnhubBaseURL, cfg.FinnhubAPIKey, timeout),
		provider.NewYahooClient(cfg.Providers.YahooBaseURL, timeout),
		provider.NewFMPClient(cfg.Providers.FMPBaseURL, cfg.FMPAPIKey, timeout),
	)

	tickers, err := resolveTickers(ctx, repo, *tickerFlag)
	if err != nil {
		log.Fatalf("Failed to resolve tickers: %v", err)
	}
	if len(tickers) == 0 {
		log.Fatal("No companies in database. Run cmd/seed first.")
	}

	log.Printf("Starting snapshot run for %d companies...", len(tickers))
	start := time.Now()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	written := 0
	for _, ticker := range tickers {
		src := fetcher.Fetch(ctx, ticker)
		snap := snapshot.Reconcile(src)

		if err := repo.UpsertSnapshot(ctx, ticker, today, snap); err != nil {
			log.Printf("Error writing snapshot for %s: %v", ticker, err)
			continue
		}
		written++
	}

	total, _ := repo.GetSnapshotCount(ctx)
	log.Printf("Snapshot run complete: %d/%d companies in %v (%d snapshots stored)",
		written, len(tickers), time.Since(start), total)
}

// resolveTickers returns the upper-cased ticker set for the run: the -ticker
// flag when given, otherwise every company in the registry.
func resolveTickers(ctx context.Context, repo *db.Repository, tickerFlag string) ([]string, error) {
	if tickerFlag == "" {
		return repo.GetAllTickers(ctx)
	}

	parts := strings.Split(tickerFlag, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			tickers = append(tickers, p)
		}
	}
	return tickers, nil
}
