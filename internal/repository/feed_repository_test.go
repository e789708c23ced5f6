package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udagram/feed-api/internal/database"
	"github.com/udagram/feed-api/internal/models"
	"github.com/udagram/feed-api/internal/testutil"
)

func TestFindAndCountAllOrdersByIDDesc(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFeedRepository(db)
	testutil.SeedFeedItems(t, db, "a.png", "b.png", "c.png")

	page, err := repo.FindAndCountAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.Count)
	require.Len(t, page.Rows, 3)
	assert.Equal(t, "c.png", page.Rows[0].URL)
	assert.Equal(t, "b.png", page.Rows[1].URL)
	assert.Equal(t, "a.png", page.Rows[2].URL)
	assert.Greater(t, page.Rows[0].ID, page.Rows[1].ID)
	assert.Greater(t, page.Rows[1].ID, page.Rows[2].ID)
}

func TestFindAndCountAllEmpty(t *testing.T) {
	repo := NewFeedRepository(testutil.NewTestDB(t))

	page, err := repo.FindAndCountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Count)
	assert.NotNil(t, page.Rows)
	assert.Empty(t, page.Rows)
}

func TestFindAndCountAllStoreFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFeedRepository(db)
	require.NoError(t, database.Close(db))

	_, err := repo.FindAndCountAll(context.Background())
	assert.Error(t, err)
}

func TestFindByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFeedRepository(db)
	seeded := testutil.SeedFeedItems(t, db, "a.png", "b.png")

	item, err := repo.FindByID(context.Background(), seeded[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "b.png", item.URL)
	assert.Equal(t, seeded[1].Caption, item.Caption)

	_, err = repo.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAssignsID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewFeedRepository(db)

	item := &models.FeedItem{Caption: "sunset", URL: "sunset.jpg"}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.NotZero(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())

	second := &models.FeedItem{Caption: "sunrise", URL: "sunrise.jpg"}
	require.NoError(t, repo.Create(context.Background(), second))
	assert.Greater(t, second.ID, item.ID)

	assert.ErrorIs(t, repo.Create(context.Background(), nil), ErrInvalidInput)
}
