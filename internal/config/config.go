package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the feed service needs. It is built once at
// startup by Load and passed explicitly to the components that need it.
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	LogFile     string

	// JWTSecret verifies bearer tokens issued by the auth service
	JWTSecret string

	// Database
	DatabaseURL string

	// Object storage
	AWSRegion       string
	AWSBucket       string
	AWSProfile      string
	AWSEndpoint     string
	SignedURLExpiry time.Duration
	SignConcurrency int

	// Optional Redis cache for signed download URLs
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	SignedURLCacheTTL time.Duration

	CORSOrigins []string

	// Tracing
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads .env (if present) and the process environment into a Config.
// REQUIRED environment variables:
// - JWT_SECRET: shared secret used to verify bearer tokens
// - AWS_BUCKET: bucket holding feed media
func Load() (*Config, error) {
	// .env is optional; system environment wins when both are set
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:     getEnvOrDefault("LOG_FILE", "server.log"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		DatabaseURL: databaseURL(),

		AWSRegion:       getEnvOrDefault("AWS_REGION", "us-east-1"),
		AWSBucket:       os.Getenv("AWS_BUCKET"),
		AWSProfile:      os.Getenv("AWS_PROFILE"),
		AWSEndpoint:     os.Getenv("AWS_ENDPOINT"),
		SignedURLExpiry: getDuration("SIGNED_URL_EXPIRY", 5*time.Minute),
		SignConcurrency: getInt("SIGN_CONCURRENCY", 8),

		RedisHost:         os.Getenv("REDIS_HOST"),
		RedisPort:         getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		SignedURLCacheTTL: getDuration("SIGNED_URL_CACHE_TTL", 0),

		CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS", "*")),

		TracingEnabled:    getBool("OTEL_ENABLED", false),
		OTLPEndpoint:      getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		TracingSampleRate: getFloat("OTEL_SAMPLE_RATE", 1.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	}
	if c.AWSBucket == "" {
		errs = append(errs, errors.New("AWS_BUCKET environment variable is required"))
	}
	if c.SignedURLExpiry <= 0 {
		errs = append(errs, errors.New("SIGNED_URL_EXPIRY must be positive"))
	}
	if c.SignConcurrency < 1 {
		errs = append(errs, errors.New("SIGN_CONCURRENCY must be at least 1"))
	}
	if c.SignedURLCacheTTL > 0 && c.SignedURLCacheTTL >= c.SignedURLExpiry {
		errs = append(errs, fmt.Errorf("SIGNED_URL_CACHE_TTL (%s) must be shorter than SIGNED_URL_EXPIRY (%s)",
			c.SignedURLCacheTTL, c.SignedURLExpiry))
	}
	return errors.Join(errs...)
}

// CacheEnabled reports whether signed download URLs should be cached in Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisHost != "" && c.SignedURLCacheTTL > 0
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// databaseURL returns DATABASE_URL or a DSN assembled from the DB_* variables
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "udagram")
	sslmode := getEnvOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return val
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if val, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return val
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return val
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if val, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return val
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// DatabaseURLFromEnv loads .env and returns only the database DSN.
// Tools that touch the database alone (migrate, seed) use it instead of Load.
func DatabaseURLFromEnv() string {
	_ = godotenv.Load()
	return databaseURL()
}
