package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
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

func startAPI(t *testing.T, signer storage.URLSigner) (*httptest.Server, *repository.MockFeedStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier, err := auth.NewVerifier(testutil.TestJWTSecret)
	require.NoError(t, err)

	store := repository.NewMockFeedStore()
	srv := httptest.NewServer(server.NewRouter(&config.Config{SignConcurrency: 2}, server.Deps{
		Store:    store,
		Signer:   signer,
		Verifier: verifier,
	}))
	t.Cleanup(srv.Close)
	return srv, store
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateAndListJSON(t *testing.T) {
	srv, store := startAPI(t, storage.NewMockSigner())
	token := testutil.MintToken(t, "alice@udagram.dev")

	_, err := run(t, "--api-url", srv.URL, "--token", token, "create", "--caption", "hello", "--url", "hello.png")
	require.NoError(t, err)
	require.Len(t, store.Items(), 1)

	out, err := run(t, "--api-url", srv.URL, "-o", "json", "list")
	require.NoError(t, err)

	var list struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, int64(1), list.Count)
}

func TestListText(t *testing.T) {
	srv, _ := startAPI(t, storage.NewMockSigner())

	out, err := run(t, "--api-url", srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0 items")
	assert.Contains(t, out, "CAPTION")
}

func TestUploadCommand(t *testing.T) {
	var put []byte
	bucket := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		put = buf.Bytes()
	}))
	t.Cleanup(bucket.Close)

	signer := storage.NewMockSigner()
	signer.SignedUploadURLFunc = func(_ context.Context, key string) (string, error) {
		return bucket.URL + "/" + key, nil
	}
	srv, store := startAPI(t, signer)

	path := filepath.Join(t.TempDir(), "sunset.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg"), 0o600))

	_, err := run(t, "--api-url", srv.URL, "--token", testutil.MintToken(t, "a@b.c"), "upload", path, "--caption", "sunset")
	require.NoError(t, err)

	assert.Equal(t, []byte("jpeg"), put)
	require.Len(t, store.Items(), 1)
	assert.Equal(t, "sunset.jpg", store.Items()[0].URL)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "-o", "yaml", "list")
	assert.Error(t, err)
}

func TestGetRejectsBadID(t *testing.T) {
	_, err := run(t, "get", "abc")
	assert.Error(t, err)
}
