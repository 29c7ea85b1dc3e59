package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"mawasim-api/internal/catalog"
	"mawasim-api/internal/config"
	"mawasim-api/internal/db"
	orderrepo "mawasim-api/internal/repository/order"
	"mawasim-api/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := orderrepo.NewPostgres(pool, logger)
	if err := seed.Apply(ctx, repo, cat, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
