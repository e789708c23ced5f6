package handlers

import (
	"context"

	"github.com/udagram/feed-api/internal/repository"
	"github.com/udagram/feed-api/internal/storage"
)

const defaultSignConcurrency = 8

// HealthCheck reports whether a backing dependency is reachable
type HealthCheck func(ctx context.Context) error

// Handlers contains all HTTP handlers for the feed API
type Handlers struct {
	store           repository.FeedStore
	signer          storage.URLSigner
	signConcurrency int
	health          HealthCheck
}

// NewHandlers creates a new handlers instance.
// signConcurrency bounds how many URLs a listing signs at once.
func NewHandlers(store repository.FeedStore, signer storage.URLSigner, signConcurrency int) *Handlers {
	if signConcurrency <= 0 {
		signConcurrency = defaultSignConcurrency
	}
	return &Handlers{
		store:           store,
		signer:          signer,
		signConcurrency: signConcurrency,
	}
}

// SetHealthCheck sets the database probe used by /health
func (h *Handlers) SetHealthCheck(check HealthCheck) {
	h.health = check
}
