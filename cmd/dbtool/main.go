package main

import (
	"context"
	"log"
	"os"
	"strings"

	"aguaruta-service/internal/adapters/repositories"
	"aguaruta-service/internal/adapters/tabular"
	"aguaruta-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool runs the idempotent schema script against the target Postgres
// database and optionally seeds the active route from a CSV file.
// Safe to re-run: existing tables, indexes and rows are left untouched.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	conn, err := db.OpenPostgres(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seedPath := os.Getenv("SEED_PATH")
	if strings.TrimSpace(seedPath) == "" {
		return
	}

	log.Printf("Loading active route from %s...", seedPath)
	f, err := os.Open(seedPath)
	if err != nil {
		log.Fatalf("open seed file: %v", err)
	}
	defer f.Close()

	points, err := tabular.ParseRoutePoints(f)
	if err != nil {
		log.Fatalf("parse seed file: %v", err)
	}

	repo := repositories.NewPostgresRouteRepository(conn)
	n, err := repo.ReplaceAll(ctx, points, true)
	if err != nil {
		log.Fatalf("load route: %v", err)
	}
	log.Printf("Route loaded. rows=%d", n)
}
