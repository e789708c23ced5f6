package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/udagram/feed-api/internal/errors"
	"github.com/udagram/feed-api/internal/fanout"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/metrics"
	"github.com/udagram/feed-api/internal/models"
	"github.com/udagram/feed-api/internal/repository"
	"github.com/udagram/feed-api/internal/util"
	"go.uber.org/zap"
)

// CreateFeedItemRequest is the body of POST /api/v0/feed
type CreateFeedItemRequest struct {
	Caption string `json:"caption"`
	URL     string `json:"url"`
}

// feedListResponse keeps the {count, rows} shape clients expect
type feedListResponse struct {
	Count int64             `json:"count"`
	Rows  []models.FeedItem `json:"rows"`
}

// ListFeed returns every feed item, newest first, with media URLs signed
// GET /api/v0/feed
func (h *Handlers) ListFeed(c *gin.Context) {
	ctx := c.Request.Context()
	logger.Log.Debug("Feed list requested")

	page, err := h.store.FindAndCountAll(ctx)
	if err != nil {
		metrics.RecordError(string(apierrors.ReasonStore), c.FullPath())
		util.RespondWithAPIError(c, apierrors.FeedFetchFailed(err))
		return
	}

	rows := h.signRows(ctx, page.Rows)
	metrics.Get().FeedListSize.Observe(float64(len(rows)))

	logger.Log.Debug("Sending feed list", logger.WithCount(page.Count))
	c.JSON(http.StatusOK, feedListResponse{Count: page.Count, Rows: rows})
}

// signRows replaces every non-empty url with a signed download URL.
// Items whose signing fails are returned unchanged.
func (h *Handlers) signRows(ctx context.Context, rows []models.FeedItem) []models.FeedItem {
	if len(rows) == 0 {
		return []models.FeedItem{}
	}

	results := fanout.Map(ctx, rows, h.signConcurrency, func(ctx context.Context, _ int, item models.FeedItem) (models.FeedItem, error) {
		if item.URL == "" {
			return item, nil
		}
		signed, err := h.signer.SignedDownloadURL(ctx, item.URL)
		if err != nil {
			return item, err
		}
		item.URL = signed
		return item, nil
	})

	signed := make([]models.FeedItem, len(rows))
	for i, res := range results {
		if res.Err != nil {
			logger.Log.Warn("Failed to sign feed item url",
				logger.WithFeedItemID(rows[i].ID),
				logger.WithKey(rows[i].URL),
				zap.Error(res.Err),
			)
			metrics.RecordError(string(apierrors.ReasonSigner), "list")
			signed[i] = rows[i]
			continue
		}
		signed[i] = res.Value
	}
	return signed
}

// GetFeedItem returns a stored feed item as is. Unknown ids answer 200 with
// an empty body.
// GET /api/v0/feed/:id
func (h *Handlers) GetFeedItem(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		util.RespondEmpty(c, http.StatusOK)
		return
	}

	item, err := h.store.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		util.RespondEmpty(c, http.StatusOK)
		return
	}
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetSignedUploadURL returns a signed PUT URL for fileName
// GET /api/v0/feed/signed-url/:fileName
func (h *Handlers) GetSignedUploadURL(c *gin.Context) {
	fileName := c.Param("fileName")

	url, err := h.signer.SignedUploadURL(c.Request.Context(), fileName)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// CreateFeedItem stores a caption for an already uploaded object and
// returns the saved item with a signed download URL.
// POST /api/v0/feed
func (h *Handlers) CreateFeedItem(c *gin.Context) {
	var req CreateFeedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Caption == "" {
		util.RespondWithAPIError(c, apierrors.MissingCaption())
		return
	}
	if req.URL == "" {
		util.RespondWithAPIError(c, apierrors.MissingURL())
		return
	}

	ctx := c.Request.Context()
	item := models.FeedItem{Caption: req.Caption, URL: req.URL}
	if err := h.store.Create(ctx, &item); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	metrics.Get().FeedItemsCreatedTotal.Inc()
	logger.Log.Info("Feed item created", logger.WithFeedItemID(item.ID), logger.WithKey(item.URL))

	signed, err := h.signer.SignedDownloadURL(ctx, item.URL)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	resp := item
	resp.URL = signed
	c.JSON(http.StatusCreated, resp)
}

// Index answers the root path with the current API prefix
// GET /
func (h *Handlers) Index(c *gin.Context) {
	c.String(http.StatusOK, "/api/v0/")
}

// IndexV0 answers the versioned API root
// GET /api/v0/
func (h *Handlers) IndexV0(c *gin.Context) {
	c.String(http.StatusOK, "V0")
}

// Health reports service and database status
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.health(ctx); err != nil {
			logger.Log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "ok",
		"timestamp": time.Now().UTC(),
	})
}
