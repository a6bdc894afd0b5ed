package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.Server.Addr)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "", cfg.NATS.URL)
	assert.Equal(t, "risk-server", cfg.NATS.ClientID)
	assert.Equal(t, 10000, cfg.Simulation.NumSimulations)
	assert.Equal(t, 5000, cfg.Simulation.BulkSimulations)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.False(t, cfg.Simulation.IncludePending)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "risk.yaml")
	content := `
server:
  addr: ":9000"
redis:
  addr: "localhost:6379"
  ttl: "1h"
nats:
  url: "nats://localhost:4222"
simulation:
  num_simulations: 2000
  include_pending: true
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, 2000, cfg.Simulation.NumSimulations)
	assert.True(t, cfg.Simulation.IncludePending)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Unset keys keep their defaults.
	assert.Equal(t, 5000, cfg.Simulation.BulkSimulations)
	assert.Equal(t, "risk-server", cfg.NATS.ClientID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/risk.yaml")
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RISK_SERVER_ADDR", ":7070")
	t.Setenv("RISK_SIMULATION_WORKERS", "8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Simulation.Workers)
}
