// Package container wires the feed API's long-lived dependencies and owns
// their shutdown.
package container

import (
	"context"
	"errors"
	"sync"

	"github.com/udagram/feed-api/internal/auth"
	"github.com/udagram/feed-api/internal/cache"
	"github.com/udagram/feed-api/internal/database"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/repository"
	"github.com/udagram/feed-api/internal/server"
	"github.com/udagram/feed-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds the application dependencies
type Container struct {
	db    *gorm.DB
	cache *cache.RedisClient

	store    repository.FeedStore
	signer   storage.URLSigner
	verifier auth.TokenVerifier

	// Lifecycle hooks
	cleanupFuncs []func(context.Context) error
	mu           sync.RWMutex
}

// New creates a new empty container.
// Services are registered with the Set* methods.
func New() *Container {
	return &Container{
		cleanupFuncs: make([]func(context.Context) error, 0),
	}
}

// SetDB registers the database connection
func (c *Container) SetDB(db *gorm.DB) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.db = db
	return c
}

// DB returns the database connection
func (c *Container) DB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// SetCache registers the optional Redis client
func (c *Container) SetCache(client *cache.RedisClient) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = client
	return c
}

// Cache returns the Redis client, or nil when caching is off
func (c *Container) Cache() *cache.RedisClient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache
}

// SetFeedStore registers the feed store
func (c *Container) SetFeedStore(store repository.FeedStore) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = store
	return c
}

// FeedStore returns the feed store
func (c *Container) FeedStore() repository.FeedStore {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store
}

// SetSigner registers the signed URL provider
func (c *Container) SetSigner(signer storage.URLSigner) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signer = signer
	return c
}

// Signer returns the signed URL provider
func (c *Container) Signer() storage.URLSigner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.signer
}

// SetVerifier registers the token verifier
func (c *Container) SetVerifier(verifier auth.TokenVerifier) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifier = verifier
	return c
}

// Verifier returns the token verifier
func (c *Container) Verifier() auth.TokenVerifier {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.verifier
}

// OnCleanup registers a function to run at shutdown.
// Cleanup functions run in LIFO order.
func (c *Container) OnCleanup(fn func(context.Context) error) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
	return c
}

// Cleanup runs every registered cleanup function, newest first, and returns
// the joined errors. A failing function does not stop the others.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	funcs := c.cleanupFuncs
	c.cleanupFuncs = nil
	c.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		if err := funcs[i](ctx); err != nil {
			logger.Log.Error("Cleanup function failed", zap.Int("index", i), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks that all required dependencies are registered.
// Call it after initialization and before starting the server.
func (c *Container) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	missingDeps := []string{}
	if c.db == nil {
		missingDeps = append(missingDeps, "database (DB)")
	}
	if c.store == nil {
		missingDeps = append(missingDeps, "feed store")
	}
	if c.signer == nil {
		missingDeps = append(missingDeps, "URL signer")
	}
	if c.verifier == nil {
		missingDeps = append(missingDeps, "token verifier")
	}

	if len(missingDeps) > 0 {
		return NewInitializationError("Missing required dependencies", missingDeps)
	}
	return nil
}

// ServerDeps returns the collaborators the HTTP router needs
func (c *Container) ServerDeps() server.Deps {
	c.mu.RLock()
	defer c.mu.RUnlock()

	db := c.db
	return server.Deps{
		Store:    c.store,
		Signer:   c.signer,
		Verifier: c.verifier,
		Health: func(ctx context.Context) error {
			return database.Health(ctx, db)
		},
	}
}
