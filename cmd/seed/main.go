package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/udagram/feed-api/internal/config"
	"github.com/udagram/feed-api/internal/database"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/seed"
	"go.uber.org/zap"
)

const defaultCount = 50

func main() {
	logger.InitializeConsole(os.Getenv("LOG_LEVEL"))

	command := "dev"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "dev":
		count := defaultCount
		if len(os.Args) > 2 {
			n, err := strconv.Atoi(os.Args[2])
			if err != nil || n < 1 {
				fmt.Println("count must be a positive integer")
				os.Exit(1)
			}
			count = n
		}
		seedDev(count)
	case "clean":
		cleanSeed()
	default:
		fmt.Println("Usage: seed [dev [count]|clean]")
		fmt.Println("  dev   - Insert fake feed items (default 50)")
		fmt.Println("  clean - Remove all feed items (use with caution)")
		os.Exit(1)
	}
}

func openDB() *seed.Seeder {
	db, err := database.Open(config.DatabaseURLFromEnv(), database.Options{})
	if err != nil {
		logger.FatalWithFields("Failed to connect to database", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.FatalWithFields("Failed to run migrations", err)
	}
	return seed.NewSeeder(db, 0)
}

func seedDev(count int) {
	logger.Log.Info("Seeding development database", zap.Int("count", count))

	if _, err := openDB().SeedDev(count); err != nil {
		logger.FatalWithFields("Seeding failed", err)
	}

	logger.Log.Info("Development database seeded")
}

func cleanSeed() {
	logger.Log.Warn("Removing all feed items")

	if _, err := openDB().Clean(); err != nil {
		logger.FatalWithFields("Cleaning failed", err)
	}
}
