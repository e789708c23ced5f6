package testutil

import (
	"testing"

	"github.com/udagram/feed-api/internal/database"
	"github.com/udagram/feed-api/internal/models"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated in-memory SQLite database that lives for the
// duration of the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite://:memory:", database.Options{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		database.Close(db)
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close(db)
	})

	return db
}

// SeedFeedItems inserts one item per key, in order, and returns them with ids
func SeedFeedItems(t *testing.T, db *gorm.DB, keys ...string) []models.FeedItem {
	t.Helper()

	items := make([]models.FeedItem, 0, len(keys))
	for i, key := range keys {
		item := models.FeedItem{Caption: "caption " + string(rune('A'+i)), URL: key}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("failed to seed feed item: %v", err)
		}
		items = append(items, item)
	}
	return items
}
