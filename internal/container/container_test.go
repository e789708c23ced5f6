package container

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udagram/feed-api/internal/auth"
	"github.com/udagram/feed-api/internal/repository"
	"github.com/udagram/feed-api/internal/storage"
	"github.com/udagram/feed-api/internal/testutil"
)

func TestValidateListsMissingDeps(t *testing.T) {
	err := New().Validate()

	var initErr *InitializationError
	require.True(t, errors.As(err, &initErr))
	assert.ElementsMatch(t, []string{"database (DB)", "feed store", "URL signer", "token verifier"}, initErr.MissingDeps)
	assert.Contains(t, err.Error(), "feed store")
}

func TestValidateAndServerDeps(t *testing.T) {
	db := testutil.NewTestDB(t)
	c := New().
		SetDB(db).
		SetFeedStore(repository.NewFeedRepository(db)).
		SetSigner(storage.NewMockSigner()).
		SetVerifier(auth.NewMockVerifier())

	require.NoError(t, c.Validate())
	assert.Nil(t, c.Cache())

	deps := c.ServerDeps()
	assert.NotNil(t, deps.Store)
	assert.NoError(t, deps.Health(context.Background()))
}

func TestCleanupRunsInReverseOrder(t *testing.T) {
	var order []int
	boom := errors.New("boom")

	c := New().
		OnCleanup(func(context.Context) error { order = append(order, 1); return nil }).
		OnCleanup(func(context.Context) error { order = append(order, 2); return boom }).
		OnCleanup(func(context.Context) error { order = append(order, 3); return nil })

	err := c.Cleanup(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{3, 2, 1}, order)
	assert.NoError(t, c.Cleanup(context.Background()), "cleanup functions run once")
}
