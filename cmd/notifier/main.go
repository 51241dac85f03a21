// Standalone notification worker. The API server runs the same consumer
// in-process; this binary exists for deployments that want queue
// consumption scaled or restarted independently.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"gigboard/internal/config"
	dbpostgres "gigboard/internal/database/postgres"
	"gigboard/internal/notify"
	"gigboard/internal/repository"
	"gigboard/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	hub := ws.NewHub(logger)
	go hub.Run()

	worker := notify.NewWorker(cfg.Redis, repository.NewPostgresNotificationRepository(db), hub, logger)
	if err := worker.Run(); err != nil {
		log.Fatalf("worker error: %v", err)
	}
}
