package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udagram/feed-api/internal/auth"
	"github.com/udagram/feed-api/internal/config"
	"github.com/udagram/feed-api/internal/repository"
	"github.com/udagram/feed-api/internal/server"
	"github.com/udagram/feed-api/internal/storage"
	"github.com/udagram/feed-api/internal/testutil"
)

// objectStore stands in for S3: it accepts PUTs on any path
type objectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	headers http.Header
}

func (o *objectStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, _ := io.ReadAll(r.Body)
	o.mu.Lock()
	o.objects[r.URL.Path] = data
	o.headers = r.Header.Clone()
	o.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

type fixture struct {
	api    *httptest.Server
	s3     *httptest.Server
	store  *repository.MockFeedStore
	signer *storage.MockSigner
	bucket *objectStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		store:  repository.NewMockFeedStore(),
		signer: storage.NewMockSigner(),
		bucket: &objectStore{objects: map[string][]byte{}},
	}
	f.s3 = httptest.NewServer(f.bucket)
	t.Cleanup(f.s3.Close)

	f.signer.SignedUploadURLFunc = func(ctx context.Context, key string) (string, error) {
		return f.s3.URL + "/" + key + "?X-Amz-Signature=test", nil
	}

	verifier, err := auth.NewVerifier(testutil.TestJWTSecret)
	require.NoError(t, err)

	router := server.NewRouter(&config.Config{SignConcurrency: 2}, server.Deps{
		Store:    f.store,
		Signer:   f.signer,
		Verifier: verifier,
	})
	f.api = httptest.NewServer(router)
	t.Cleanup(f.api.Close)
	return f
}

func (f *fixture) client(token string) *Client {
	return New(Options{BaseURL: f.api.URL, Token: token})
}

func TestListAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(testutil.MintToken(t, "alice@udagram.dev"))

	created, err := c.CreateItem(ctx, "first", "first.png")
	require.NoError(t, err)
	assert.Equal(t, storage.MockDownloadURL("first.png"), created.URL)

	list, err := c.ListFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Count)
	require.Len(t, list.Rows, 1)

	item, err := c.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "first.png", item.URL)

	_, err = c.GetItem(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadFlow(t *testing.T) {
	f := newFixture(t)
	c := f.client(testutil.MintToken(t, "alice@udagram.dev"))

	item, err := c.Upload(context.Background(), "cat.png", bytes.NewReader([]byte("png-bytes")), "image/png", "a cat")
	require.NoError(t, err)

	assert.Equal(t, "a cat", item.Caption)
	assert.Equal(t, []byte("png-bytes"), f.bucket.objects["/cat.png"])
	assert.Empty(t, f.bucket.headers.Get("Authorization"))
	assert.Equal(t, "image/png", f.bucket.headers.Get("Content-Type"))

	stored := f.store.Items()
	require.Len(t, stored, 1)
	assert.Equal(t, "cat.png", stored[0].URL)
}

func TestErrorsCarryServerMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client("").CreateItem(ctx, "x", "x.png")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "No authorization headers.", apiErr.Message)

	_, err = f.client(testutil.MintToken(t, "alice@udagram.dev")).CreateItem(ctx, "", "x.png")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Caption is required or malformed.", apiErr.Message)

	f.store.FindAndCountAllFunc = func(ctx context.Context) (*repository.FeedPage, error) {
		return nil, errors.New("down")
	}
	_, err = f.client("").ListFeed(ctx)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to fetch feed items", apiErr.Message)
}
