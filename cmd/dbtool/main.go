package main

import (
	"brevet-times-service/internal/adapters/repositories"
	"brevet-times-service/internal/config"
	"brevet-times-service/internal/platform/db"
	"brevet-times-service/internal/platform/obs"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	dotEnvErr := godotenv.Load()

	logger, flush, err := obs.NewLogger(config.Get("DEBUG", "") == "true")
	if err != nil {
		panic(err)
	}
	defer flush()

	if dotEnvErr != nil {
		logger.Info("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/controls.json")
	if err := initAndSeed(context.Background(), logger, conn, seedPath); err != nil {
		logger.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, logger *zap.Logger, conn *sql.DB, seedPath string) error {
	logger.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	logger.Info("Schema ready.")

	logger.Info("Seeding database...", zap.String("seed_path", seedPath))
	repo := repositories.NewSQLControlRepository(conn)
	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("Seeding complete.")

	return nil
}
