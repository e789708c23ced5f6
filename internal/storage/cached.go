package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/udagram/feed-api/internal/cache"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/metrics"
	"github.com/udagram/feed-api/internal/telemetry"
	"go.uber.org/zap"
)

const (
	downloadCachePrefix = "signed-url:get:"
	signedURLCacheName  = "signed_url"
)

// CachedSigner reuses signed download URLs for a TTL shorter than their
// expiry. Upload URLs are always freshly signed.
type CachedSigner struct {
	next  URLSigner
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSigner wraps next. ttl must be positive and shorter than the
// expiry of the URLs next produces.
func NewCachedSigner(next URLSigner, c cache.Cache, ttl, urlExpiry time.Duration) (*CachedSigner, error) {
	if ttl <= 0 || ttl >= urlExpiry {
		return nil, fmt.Errorf("cache ttl %s must be positive and shorter than url expiry %s", ttl, urlExpiry)
	}
	return &CachedSigner{next: next, cache: c, ttl: ttl}, nil
}

// SignedDownloadURL returns a cached URL for key or signs and caches a new one.
// Cache errors never fail the call.
func (s *CachedSigner) SignedDownloadURL(ctx context.Context, key string) (string, error) {
	cacheKey := downloadCachePrefix + key

	cctx, span := telemetry.TraceCacheCall(ctx, "get", cacheKey)
	url, err := s.cache.Get(cctx, cacheKey)
	telemetry.EndSpan(span, ignoreMiss(err))
	if err == nil {
		metrics.RecordCacheHit(signedURLCacheName)
		return url, nil
	}
	metrics.RecordCacheMiss(signedURLCacheName)
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Log.Warn("signed url cache read failed", logger.WithKey(key), zap.Error(err))
	}

	url, err = s.next.SignedDownloadURL(ctx, key)
	if err != nil {
		return "", err
	}

	cctx, span = telemetry.TraceCacheCall(ctx, "setex", cacheKey)
	setErr := s.cache.SetEx(cctx, cacheKey, url, s.ttl)
	telemetry.EndSpan(span, setErr)
	if setErr != nil {
		logger.Log.Warn("signed url cache write failed", logger.WithKey(key), zap.Error(setErr))
	}

	return url, nil
}

// SignedUploadURL delegates to the wrapped signer
func (s *CachedSigner) SignedUploadURL(ctx context.Context, key string) (string, error) {
	return s.next.SignedUploadURL(ctx, key)
}

func ignoreMiss(err error) error {
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}
