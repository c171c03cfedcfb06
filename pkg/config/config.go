package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceHTTP      = "http"
	CatalogSourceFirestore = "firestore"
)

type Config struct {
	ServerPort         string
	Environment        string
	CatalogSource      string
	CatalogBaseURL     string
	CatalogTimeout     time.Duration
	FirebaseProject    string
	ServiceAccountJSON string
	ServiceAccountPath string
	RateLimitPerMinute int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		CatalogSource:      strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceHTTP)),
		CatalogBaseURL:     strings.TrimRight(getEnv("CATALOG_BASE_URL", "http://localhost:8000/api"), "/"),
		CatalogTimeout:     time.Duration(getEnvAsInt64("CATALOG_TIMEOUT_SECONDS", 10)) * time.Second,
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		RateLimitPerMinute: getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 120),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case CatalogSourceHTTP:
		if c.CatalogBaseURL == "" {
			return errMissing("CATALOG_BASE_URL")
		}
	case CatalogSourceFirestore:
		if c.FirebaseProject == "" {
			return errMissing("FIREBASE_PROJECT_ID")
		}
	default:
		return &Error{Key: "CATALOG_SOURCE", Reason: "must be http or firestore, got " + strconv.Quote(c.CatalogSource)}
	}
	if c.RateLimitPerMinute <= 0 {
		return &Error{Key: "RATE_LIMIT_PER_MINUTE", Reason: "must be positive"}
	}
	return nil
}

type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	return "config " + e.Key + ": " + e.Reason
}

func errMissing(key string) error {
	return &Error{Key: key, Reason: "is required"}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
