package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "pharmacare", cfg.Database.Database)
	assert.Equal(t, 800*time.Millisecond, cfg.Auth.LoginLatency)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_LOGIN_LATENCY", "50ms")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50*time.Millisecond, cfg.Auth.LoginLatency)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}

func TestDatabaseDSN(t *testing.T) {
	dbCfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Database: "pharmacare", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=pharmacare sslmode=disable",
		dbCfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	redisCfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", redisCfg.RedisAddr())
}
