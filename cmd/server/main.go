package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"rental-backend/internal/cache"
	"rental-backend/internal/config"
	"rental-backend/internal/database"
	"rental-backend/internal/db"
	"rental-backend/internal/handlers"
	"rental-backend/internal/health"
	h "rental-backend/internal/http"
	"rental-backend/internal/importer"
	"rental-backend/internal/middleware"
	"rental-backend/internal/repositories"
	"rental-backend/internal/services"
	"rental-backend/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Connect to PostgreSQL; without it the server still comes up with an
	// in-memory ledger so imports can be exercised against a scratch store.
	var pool *pgxpool.Pool
	store := repositories.NewMemoryStore()
	if p, err := db.Connect(ctx, cfg); err != nil {
		log.Printf("[DB] PostgreSQL unavailable, running with in-memory store: %v", err)
	} else {
		pool = p
		defer pool.Close()

		migrator := database.NewMigratorWithFS(pool, migrations.FS)
		if err := migrator.RunMigrations(ctx); err != nil {
			log.Fatalf("[DB] Migrations failed: %v", err)
		}
		store = repositories.NewPostgresStore(pool)
		log.Println("[DB] Connected to PostgreSQL")
	}

	// Redis is optional; the dashboard just skips caching when it is down.
	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, dashboard caching disabled: %v", err)
	}

	ledgerService := services.NewLedgerService(store)
	reportService := services.NewReportService(ledgerService)
	importService := importer.NewService(store)

	importHandler := handlers.NewImportHandler(importService, cfg.Import.MaxUploadBytes)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	entityHandler := handlers.NewEntityHandler(store)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := h.NewRouter(importHandler, ledgerHandler, entityHandler, reportHandler, healthHandler)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.NewCORS(cfg)(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("[Server] Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}
