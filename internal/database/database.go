package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/udagram/feed-api/internal/logger"
	"github.com/udagram/feed-api/internal/models"
	"github.com/udagram/feed-api/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// Options controls how the connection is opened
type Options struct {
	// Verbose logs every statement (development)
	Verbose bool
	// Tracing registers the OpenTelemetry GORM plugin
	Tracing bool
}

// Open creates and configures the database connection.
// DSNs starting with sqlite:// open a SQLite file (or ":memory:"); anything
// else is handed to the postgres driver.
func Open(dsn string, opts Options) (*gorm.DB, error) {
	gormLog := gormlogger.Default.LogMode(gormlogger.Warn)
	if opts.Verbose {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	}

	dialector, driverName := dialectorFor(dsn)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLog,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.Tracing {
		if err := db.Use(telemetry.GORMTracingPlugin(driverName)); err != nil {
			return nil, fmt.Errorf("failed to register tracing plugin: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if driverName == "sqlite" {
		// a single connection keeps an in-memory database alive and shared
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	logger.Log.Info("Database connected", zap.String("driver", driverName))
	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, string) {
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		return sqlite.Open(path), "sqlite"
	}
	return postgres.Open(dsn), "postgresql"
}

// Migrate creates or updates the feed tables
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := db.AutoMigrate(&models.FeedItem{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Log.Info("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Health checks database connectivity
func Health(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
