package server

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/udagram/feed-api/internal/auth"
	"github.com/udagram/feed-api/internal/config"
	"github.com/udagram/feed-api/internal/handlers"
	"github.com/udagram/feed-api/internal/middleware"
	"github.com/udagram/feed-api/internal/repository"
	"github.com/udagram/feed-api/internal/storage"
	"github.com/udagram/feed-api/internal/telemetry"
)

// FeedPrefix is where the feed routes are mounted
const FeedPrefix = "/api/v0/feed"

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	Store    repository.FeedStore
	Signer   storage.URLSigner
	Verifier auth.TokenVerifier
	// Health probes the database for /health; nil reports healthy
	Health handlers.HealthCheck
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.TracingMiddleware(telemetry.ServiceName))
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.ErrorLogger())

	h := handlers.NewHandlers(deps.Store, deps.Signer, cfg.SignConcurrency)
	h.SetHealthCheck(deps.Health)

	r.GET("/", h.Index)
	r.GET("/api/v0/", h.IndexV0)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterFeedRoutes(r.Group(FeedPrefix), h, middleware.RequireAuth(deps.Verifier))

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"}
	config.ExposeHeaders = []string{"X-Request-ID"}
	config.MaxAge = 12 * time.Hour
	return config
}
