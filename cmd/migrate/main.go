package main

import (
	"fmt"
	"os"

	"github.com/udagram/feed-api/internal/config"
	"github.com/udagram/feed-api/internal/database"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/models"
)

func main() {
	logger.InitializeConsole(os.Getenv("LOG_LEVEL"))

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up", "down":
	default:
		fmt.Println("Usage: migrate [up|down]")
		fmt.Println("  up   - Create or update the FeedItem table")
		fmt.Println("  down - Drop the FeedItem table")
		os.Exit(1)
	}

	db, err := database.Open(config.DatabaseURLFromEnv(), database.Options{})
	if err != nil {
		logger.FatalWithFields("Failed to connect to database", err)
	}
	defer database.Close(db)

	if command == "up" {
		if err := database.Migrate(db); err != nil {
			logger.FatalWithFields("Migration failed", err)
		}
		return
	}

	if err := db.Migrator().DropTable(&models.FeedItem{}); err != nil {
		logger.FatalWithFields("Failed to drop FeedItem table", err)
	}
	logger.Log.Info("FeedItem table dropped")
}
