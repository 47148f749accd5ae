package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/epochclub/club-api/internal/config"
	"github.com/epochclub/club-api/internal/httpserver"
	"github.com/epochclub/club-api/internal/store"
)

// main boots the service: config → DB → schema → HTTP server.
func main() {
	// Load runtime config from environment (DB_URL, JWT_SECRET, ...).
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	// Connect to durable storage (Postgres) using a connection pool.
	db, err := store.NewPostgresStore(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Ensure required tables/indexes exist so `docker compose up --build` is enough.
	if err := db.EnsureSchema(); err != nil {
		log.Fatal(err)
	}

	// Build HTTP router (public content + auth + member + admin APIs).
	router := httpserver.NewRouter(cfg, db, logger)

	logger.Info("server started", "addr", cfg.ListenAddr)
	log.Fatal(router.Run(cfg.ListenAddr))
}
