package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, "clothing_store", cfg.DB.Database)
	assert.Equal(t, 10, cfg.DB.PoolSize)
	assert.Equal(t, "order_events", cfg.Broker.Queue)
	assert.False(t, cfg.StrictStock)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, "info", cfg.Telemetry.LogLevel)
	assert.Equal(t, "local", cfg.Telemetry.Environment)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_POOL_SIZE", "25")
	t.Setenv("STRICT_STOCK", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 25, cfg.DB.PoolSize)
	assert.True(t, cfg.StrictStock)
	assert.Equal(t, "debug", cfg.Telemetry.LogLevel)
}

func TestLoadConfig_RejectsBadPoolSize(t *testing.T) {
	t.Setenv("DB_POOL_SIZE", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}
