package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const batchSize = 100

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance. A zero seed uses the clock.
func NewSeeder(db *gorm.DB, seed uint64) *Seeder {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	_ = gofakeit.Seed(seed)
	return &Seeder{db: db}
}

// SeedDev inserts count feed items with fake captions and media keys spread
// over the last 30 days
func (s *Seeder) SeedDev(count int) ([]models.FeedItem, error) {
	if count <= 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	items := make([]models.FeedItem, count)
	for i := range items {
		createdAt := gofakeit.DateRange(now.AddDate(0, 0, -30), now)
		items[i] = models.FeedItem{
			Caption:   gofakeit.HipsterSentence(),
			URL:       mediaKey(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
	}

	if err := s.db.CreateInBatches(&items, batchSize).Error; err != nil {
		return nil, fmt.Errorf("failed to seed feed items: %w", err)
	}

	logger.Log.Info("Seeded feed items", zap.Int("count", len(items)))
	return items, nil
}

// Clean removes every feed item and returns how many were deleted
func (s *Seeder) Clean() (int64, error) {
	result := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.FeedItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean feed items: %w", result.Error)
	}

	logger.Log.Info("Removed feed items", zap.Int64("count", result.RowsAffected))
	return result.RowsAffected, nil
}

// mediaKey returns a plausible object key such as "lagoon-1f3a9c2e.jpg"
func mediaKey() string {
	id := strings.ReplaceAll(gofakeit.UUID(), "-", "")[:8]
	ext := gofakeit.RandomString([]string{"jpg", "jpeg", "png"})
	word := strings.ReplaceAll(strings.ToLower(gofakeit.Word()), " ", "-")
	return fmt.Sprintf("%s-%s.%s", word, id, ext)
}
