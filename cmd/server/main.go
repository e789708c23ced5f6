package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/udagram/feed-api/internal/auth"
	"github.com/udagram/feed-api/internal/cache"
	"github.com/udagram/feed-api/internal/config"
	"github.com/udagram/feed-api/internal/container"
	"github.com/udagram/feed-api/internal/database"
	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/metrics"
	"github.com/udagram/feed-api/internal/repository"
	"github.com/udagram/feed-api/internal/server"
	"github.com/udagram/feed-api/internal/storage"
	"github.com/udagram/feed-api/internal/telemetry"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Log.Info("=== Udagram feed API starting ===",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, telemetry.Config{
		ServiceName:  telemetry.ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Enabled:      cfg.TracingEnabled,
		SamplingRate: cfg.TracingSampleRate,
	})
	if err != nil {
		logger.Log.Warn("Tracing disabled", zap.Error(err))
	} else if tp != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Log.Warn("Tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	metrics.Initialize()

	db, err := database.Open(cfg.DatabaseURL, database.Options{
		Verbose: !cfg.IsProduction() && cfg.LogLevel == "debug",
		Tracing: cfg.TracingEnabled,
	})
	if err != nil {
		logger.FatalWithFields("Failed to initialize database", err)
	}

	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		logger.FatalWithFields("Failed to initialize token verifier", err)
	}

	deps := container.New().
		SetDB(db).
		SetFeedStore(repository.NewFeedRepository(db)).
		SetVerifier(verifier).
		OnCleanup(func(context.Context) error { return database.Close(db) })
	configureSigner(ctx, cfg, deps)

	if err := deps.Validate(); err != nil {
		logger.FatalWithFields("Dependency wiring incomplete", err)
	}

	r := server.NewRouter(cfg, deps.ServerDeps())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Feed API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalWithFields("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("Server forced to shutdown", err)
	}
	if err := deps.Cleanup(shutdownCtx); err != nil {
		logger.WarnWithFields("Cleanup incomplete", err)
	}

	logger.Log.Info("Server exited")
}

// configureSigner registers the S3 signer, wrapped in the Redis cache when
// configured.
func configureSigner(ctx context.Context, cfg *config.Config, deps *container.Container) {
	s3Signer, err := storage.NewS3Signer(ctx, storage.S3Options{
		Region:   cfg.AWSRegion,
		Bucket:   cfg.AWSBucket,
		Profile:  cfg.AWSProfile,
		Endpoint: cfg.AWSEndpoint,
		Expiry:   cfg.SignedURLExpiry,
	})
	if err != nil {
		logger.FatalWithFields("Failed to initialize S3 signer", err)
	}
	deps.SetSigner(s3Signer)

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s3Signer.CheckBucketAccess(checkCtx); err != nil {
		logger.Log.Warn("S3 bucket access check failed, signed URLs may not resolve",
			zap.String("bucket", cfg.AWSBucket),
			zap.Error(err),
		)
	}

	if !cfg.CacheEnabled() {
		return
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		logger.Log.Warn("Redis unavailable, signing without cache", zap.Error(err))
		return
	}
	deps.SetCache(redisClient).OnCleanup(func(context.Context) error { return redisClient.Close() })

	cached, err := storage.NewCachedSigner(s3Signer, redisClient, cfg.SignedURLCacheTTL, cfg.SignedURLExpiry)
	if err != nil {
		logger.FatalWithFields("Invalid signed URL cache settings", err)
	}
	deps.SetSigner(cached)

	logger.Log.Info("Signed URL cache enabled", zap.Duration("ttl", cfg.SignedURLCacheTTL))
}
