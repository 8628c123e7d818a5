package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

const connectTimeout = 5 * time.Second

// InitPostgres connects when DATABASE_URL is set. Lookup history is optional,
// so connection failures leave Pool nil instead of stopping the process.
func InitPostgres(ctx context.Context) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, skipping Postgres connection")
		return
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Printf("invalid DATABASE_URL, lookup history disabled: %v", err)
		return
	}
	cfg.MaxConns = 8

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		log.Printf("failed to connect to Postgres, lookup history disabled: %v", err)
		return
	}
	if err := pool.Ping(connectCtx); err != nil {
		log.Printf("failed to ping Postgres, lookup history disabled: %v", err)
		pool.Close()
		return
	}
	Pool = pool
	log.Println("Connected to Postgres")
}

func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
