package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitializeIsSingleton(t *testing.T) {
	assert.Same(t, Initialize(), Get())
}

func TestRecordSignedURL(t *testing.T) {
	m := Get()
	m.SignedURLsTotal.Reset()

	RecordSignedURL("get", time.Millisecond, nil)
	RecordSignedURL("get", time.Millisecond, nil)
	RecordSignedURL("put", time.Millisecond, errors.New("denied"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SignedURLsTotal.WithLabelValues("get", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SignedURLsTotal.WithLabelValues("put", "error")))
}

func TestRecordDatabaseQuery(t *testing.T) {
	m := Get()
	m.DatabaseQueriesTotal.Reset()

	RecordDatabaseQuery("select", "FeedItem", time.Millisecond, nil)
	RecordDatabaseQuery("insert", "FeedItem", time.Millisecond, errors.New("constraint"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseQueriesTotal.WithLabelValues("select", "FeedItem", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseQueriesTotal.WithLabelValues("insert", "FeedItem", "error")))
}

func TestRecordCache(t *testing.T) {
	m := Get()
	m.CacheHitsTotal.Reset()
	m.CacheMissesTotal.Reset()

	RecordCacheHit("signed_url")
	RecordCacheMiss("signed_url")
	RecordCacheMiss("signed_url")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("signed_url")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("signed_url")))
}
