package repository

import (
	"context"
	"errors"
	"time"

	"github.com/udagram/feed-api/internal/metrics"
	"github.com/udagram/feed-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("feed item not found")
	ErrInvalidInput = errors.New("invalid input")
)

const feedTable = "FeedItem"

// FeedPage is an ordered slice of feed items together with the total count
type FeedPage struct {
	Count int64
	Rows  []models.FeedItem
}

// FeedStore persists and retrieves feed items
type FeedStore interface {
	// FindAndCountAll returns every item, newest (highest id) first
	FindAndCountAll(ctx context.Context) (*FeedPage, error)
	// FindByID returns ErrNotFound when no item has the given id
	FindByID(ctx context.Context, id uint) (*models.FeedItem, error)
	// Create inserts item and fills in its id and timestamps
	Create(ctx context.Context, item *models.FeedItem) error
}

// feedRepository implements FeedStore on GORM
type feedRepository struct {
	db *gorm.DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *gorm.DB) FeedStore {
	return &feedRepository{db: db}
}

func (r *feedRepository) FindAndCountAll(ctx context.Context) (page *FeedPage, err error) {
	start := time.Now()
	defer func() { metrics.RecordDatabaseQuery("select", feedTable, time.Since(start), err) }()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FeedItem{}).Count(&count).Error; err != nil {
		return nil, err
	}

	rows := make([]models.FeedItem, 0, count)
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	return &FeedPage{Count: count, Rows: rows}, nil
}

func (r *feedRepository) FindByID(ctx context.Context, id uint) (*models.FeedItem, error) {
	start := time.Now()

	var item models.FeedItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// absent rows are not store failures
		metrics.RecordDatabaseQuery("select", feedTable, time.Since(start), nil)
		return nil, ErrNotFound
	}
	metrics.RecordDatabaseQuery("select", feedTable, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *feedRepository) Create(ctx context.Context, item *models.FeedItem) (err error) {
	if item == nil {
		return ErrInvalidInput
	}

	start := time.Now()
	defer func() { metrics.RecordDatabaseQuery("insert", feedTable, time.Since(start), err) }()

	return r.db.WithContext(ctx).Create(item).Error
}
