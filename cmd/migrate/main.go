package main

import (
	"context"
	"log/slog"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"purepoker-community/internal/database"
	"purepoker-community/internal/logger"
)

func main() {
	logger.SetDefault(logger.New())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, database.LoadConfigFromEnv())
	if err != nil {
		slog.Error("Failed to connect", "error", err.Error())
		panic(err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("Migration failed", "error", err.Error())
		panic(err)
	}

	slog.Info("Migration complete")
}
