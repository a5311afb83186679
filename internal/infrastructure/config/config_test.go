package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func required() map[string]string {
	return map[string]string{
		"JWT_SECRET":   "secret",
		"DATABASE_URL": "postgres://localhost:5432/catalog",
	}
}

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(required()))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.False(t, cfg.Postgres.Bootstrap)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Redis.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Redis.LoginWindow)
	assert.Empty(t, cfg.Mongo.URI)
	assert.Equal(t, "catalog", cfg.Mongo.Database)
	assert.Equal(t, 4, cfg.Mongo.AuditWorkers)
	assert.False(t, cfg.IsProduction())
}

func TestLoadWith_Overrides(t *testing.T) {
	env := required()
	env["PORT"] = "8080"
	env["ENV"] = "Production"
	env["TOKEN_TTL"] = "1h"
	env["DB_BOOTSTRAP"] = "true"
	env["REDIS_ADDR"] = "localhost:6379"
	env["LOGIN_WINDOW"] = "1m"
	env["CORS_ALLOWED_ORIGINS"] = "http://a.test,http://b.test"

	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.Postgres.Bootstrap)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.Redis.LoginWindow)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
}

func TestLoadWith_MissingRequired(t *testing.T) {
	for _, key := range []string{"JWT_SECRET", "DATABASE_URL"} {
		t.Run(key, func(t *testing.T) {
			env := required()
			delete(env, key)

			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadWith_RejectsNonPositiveValues(t *testing.T) {
	env := required()
	env["TOKEN_TTL"] = "0s"
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
	require.Error(t, err)

	env = required()
	env["LOGIN_MAX_ATTEMPTS"] = "0"
	_, err = LoadWith(context.Background(), envconfig.MapLookuper(env))
	require.Error(t, err)
}
