package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "MONGO_URI", "MONGO_DB", "JWT_SECRET", "JWT_EXPIRES_IN",
		"QUERY_TIMEOUT", "STRIPE_SECRET_KEY",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_USE_SSL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "contestDB", cfg.MongoDB)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
	assert.False(t, cfg.MinioUseSSL)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.True(t, cfg.MinioUseSSL)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRES_IN", "soon")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
}
