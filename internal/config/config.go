package config

import (
	"os"
	"time"
)

// Config holds all runtime settings, read once at startup and passed to
// the components that need them.
type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	JWTSecret    string
	JWTExpiresIn time.Duration
	QueryTimeout time.Duration

	StripeSecretKey string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// Load reads configuration from environment variables with sensible
// fallbacks for local development.
func Load() Config {
	return Config{
		Port:            getenv("PORT", "5000"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "contestDB"),
		JWTSecret:       getenv("JWT_SECRET", "dev-secret"),
		JWTExpiresIn:    getduration("JWT_EXPIRES_IN", 24*time.Hour),
		QueryTimeout:    getduration("QUERY_TIMEOUT", 10*time.Second),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		MinioEndpoint:   getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:  getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:  getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:     os.Getenv("MINIO_USE_SSL") == "true",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
