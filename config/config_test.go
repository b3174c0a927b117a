package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "productRecommendation", cfg.Database.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Empty(t, cfg.Cache.RedisAddr)
}

func TestLoad_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CORSOriginsList(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}
