package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/skyfare/ticketapi/api"
	"github.com/skyfare/ticketapi/config"
	"github.com/skyfare/ticketapi/internal/bootstrap"
	"github.com/skyfare/ticketapi/internal/ratelimit"
	"github.com/skyfare/ticketapi/internal/repository"
	"github.com/skyfare/ticketapi/internal/service/tickets"
	"github.com/skyfare/ticketapi/migrations"
)

const startupTimeout = 5 * time.Second

func main() {
	logger := log.Default()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Printf("WARN: load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	repo := repository.NewTicketRepository(pool)
	service := tickets.NewTicketService(repo)
	handler := api.NewTicketHandler(service, logger)
	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window())

	engine := bootstrap.NewRouter(cfg, handler, limiter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Printf("api listening on %s", cfg.HTTP.Address)
	if err := bootstrap.Run(ctx, cfg, engine); err != nil {
		log.Fatalf("server error: %v", err)
	}
	logger.Printf("server stopped")
}
