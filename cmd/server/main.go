package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"aguaruta-service/internal/adapters/cache"
	"aguaruta-service/internal/adapters/photos"
	"aguaruta-service/internal/adapters/repositories"
	"aguaruta-service/internal/api"
	"aguaruta-service/internal/config"
	"aguaruta-service/internal/platform/db"
	"aguaruta-service/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or SQLite, Redis, Cloudinary) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()
	port := config.Get("PORT", "8080")

	conn, deliveryRepo, routeRepo, err := openRepositories(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	var summaryCache ports.SummaryCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping failed addr=%s: %v", addr, err)
		}
		summaryCache = cache.NewRedisSummaryCache(client, 5*time.Minute)
		log.Printf("Summary cache enabled addr=%s", addr)
	}

	var signer *photos.Signer
	if cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME"); cloudName != "" {
		signer, err = photos.NewSigner(
			cloudName,
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
			config.Get("CLOUDINARY_FOLDER", photos.DefaultFolder),
		)
		if err != nil {
			log.Fatal(err)
		}
	}

	router := api.NewRouter(deliveryRepo, routeRepo, summaryCache, signer)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepositories picks the storage backend: Postgres when DATABASE_URL is
// set, otherwise a local SQLite file whose schema is initialized on startup.
func openRepositories(ctx context.Context) (*sql.DB, ports.DeliveryRepository, ports.RouteRepository, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.OpenPostgres(ctx, databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		return conn,
			repositories.NewPostgresDeliveryRepository(conn),
			repositories.NewPostgresRouteRepository(conn),
			nil
	}

	dbPath := config.Get("DB_PATH", "data/aguaruta.db")
	conn, err := db.OpenSqlite(ctx, dbPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := repositories.InitSqliteSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}

	return conn,
		repositories.NewSqliteDeliveryRepository(conn),
		repositories.NewSqliteRouteRepository(conn),
		nil
}
