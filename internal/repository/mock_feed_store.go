package repository

import (
	"context"
	"sync"

	"github.com/udagram/feed-api/internal/models"
)

// MockFeedStore is a mock implementation of FeedStore for testing.
// Methods without an override keep items in memory.
type MockFeedStore struct {
	mu     sync.Mutex
	items  []models.FeedItem
	nextID uint

	FindAndCountAllFunc func(ctx context.Context) (*FeedPage, error)
	FindByIDFunc        func(ctx context.Context, id uint) (*models.FeedItem, error)
	CreateFunc          func(ctx context.Context, item *models.FeedItem) error
}

// NewMockFeedStore creates a new in-memory mock store
func NewMockFeedStore() *MockFeedStore {
	return &MockFeedStore{nextID: 1}
}

// Items returns a copy of the stored items in insertion order
func (m *MockFeedStore) Items() []models.FeedItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.FeedItem(nil), m.items...)
}

func (m *MockFeedStore) FindAndCountAll(ctx context.Context) (*FeedPage, error) {
	if m.FindAndCountAllFunc != nil {
		return m.FindAndCountAllFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]models.FeedItem, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		rows = append(rows, m.items[i])
	}
	return &FeedPage{Count: int64(len(rows)), Rows: rows}, nil
}

func (m *MockFeedStore) FindByID(ctx context.Context, id uint) (*models.FeedItem, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockFeedStore) Create(ctx context.Context, item *models.FeedItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	if item == nil {
		return ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = m.nextID
	m.nextID++
	m.items = append(m.items, *item)
	return nil
}
