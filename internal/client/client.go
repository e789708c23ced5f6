// Package client is a typed HTTP client for the feed API.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/models"
	"github.com/udagram/feed-api/internal/telemetry"
	"go.uber.org/zap"
)

const (
	feedPath  = "/api/v0/feed"
	userAgent = "udagram-feedctl/0.1.0"
)

// ErrNotFound is returned by GetItem when the server answers with an empty body
var ErrNotFound = errors.New("feed item not found")

// FeedList mirrors the list endpoint response
type FeedList struct {
	Count int64             `json:"count"`
	Rows  []models.FeedItem `json:"rows"`
}

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("feed api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("feed api: %d %s", e.StatusCode, e.Message)
}

// errorBody covers the {message}, {auth, message} and {error} shapes
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client talks to one feed API instance
type Client struct {
	http *resty.Client
	// storage uploads to signed URLs without API credentials
	storage *resty.Client
}

// Options configures a Client
type Options struct {
	BaseURL string
	// Token is sent as "Bearer <token>" when set
	Token   string
	Timeout time.Duration
}

// New creates a client for the API at opts.BaseURL
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetTransport(telemetry.NewInstrumentedTransport("feed-api", nil)).
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", userAgent)

	if opts.Token != "" {
		httpClient.SetAuthToken(opts.Token)
	}

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Log.Debug("HTTP request", zap.String("method", req.Method), zap.String("url", req.URL))
		return nil
	})
	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Log.Debug("HTTP response", zap.Int("status", resp.StatusCode()), zap.Duration("latency", resp.Time()))
		return nil
	})

	return &Client{
		http:    httpClient,
		storage: resty.New().SetTimeout(opts.Timeout).SetHeader("User-Agent", userAgent),
	}
}

// ListFeed returns every feed item with signed media URLs
func (c *Client) ListFeed(ctx context.Context) (*FeedList, error) {
	var list FeedList
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&list).
		SetError(&errorBody{}).
		Get(feedPath)
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetItem returns the stored (unsigned) feed item with id
func (c *Client) GetItem(ctx context.Context, id uint) (*models.FeedItem, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&errorBody{}).
		Get(feedPath + "/" + strconv.FormatUint(uint64(id), 10))
	if err := check(resp, err); err != nil {
		return nil, err
	}
	if len(resp.Body()) == 0 {
		return nil, ErrNotFound
	}

	var item models.FeedItem
	if err := c.http.JSONUnmarshal(resp.Body(), &item); err != nil {
		return nil, fmt.Errorf("decode feed item: %w", err)
	}
	return &item, nil
}

// UploadURL asks the server for a signed PUT URL for fileName
func (c *Client) UploadURL(ctx context.Context, fileName string) (string, error) {
	var body struct {
		URL string `json:"url"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("fileName", fileName).
		SetResult(&body).
		SetError(&errorBody{}).
		Get(feedPath + "/signed-url/{fileName}")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return body.URL, nil
}

// CreateItem stores caption for an uploaded object key
func (c *Client) CreateItem(ctx context.Context, caption, key string) (*models.FeedItem, error) {
	var item models.FeedItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"caption": caption, "url": key}).
		SetResult(&item).
		SetError(&errorBody{}).
		Post(feedPath)
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &item, nil
}

// PutObject uploads body to a signed PUT URL. The signature in the URL
// grants access, so no bearer token is sent.
func (c *Client) PutObject(ctx context.Context, signedURL string, body io.Reader, contentType string) error {
	req := c.storage.R().
		SetContext(ctx).
		SetBody(body)
	if contentType != "" {
		req.SetHeader("Content-Type", contentType)
	}

	resp, err := req.Put(signedURL)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if !resp.IsSuccess() {
		return &APIError{StatusCode: resp.StatusCode(), Message: "object storage rejected upload"}
	}
	return nil
}

// Upload runs the whole publish flow: signed URL, PUT, create
func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType, caption string) (*models.FeedItem, error) {
	signedURL, err := c.UploadURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get upload url: %w", err)
	}
	if err := c.PutObject(ctx, signedURL, body, contentType); err != nil {
		return nil, err
	}
	return c.CreateItem(ctx, caption, key)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
