package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2beens/liftstats/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
host = "localhost"
port = 9000
log_level = "trace"
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "gymstats"
redis_host = "localhost"
redis_port = "6379"
prometheus_metrics_host = "localhost"
prometheus_metrics_port = "2112"

[production]
environment = "prod"
host = "0.0.0.0"
port = 1987
log_level = "info"
logs_path = "/var/log/liftstats/service"
stats_rate_limit_allowed_per_min = 30
default_milestone_steps = 7
max_milestones = 200
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testToml), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := config.Load("dev", writeConfig(t))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, "gymstats", cfg.PostgresDBName)
	assert.Equal(t, "2112", cfg.PrometheusMetricsPort)
	// defaults
	assert.Equal(t, 120, cfg.StatsRateLimitAllowedPerMin)
	assert.Equal(t, 20, cfg.StatsCacheSizeMB)
	assert.Equal(t, 600, cfg.StatsCacheTTLSeconds)
	assert.Equal(t, 5, cfg.DefaultMilestoneSteps)
	assert.Equal(t, 1000, cfg.MaxMilestones)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := config.Load("Production", writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, 1987, cfg.Port)
	assert.Equal(t, "/var/log/liftstats/service", cfg.LogsPath)
	assert.Equal(t, 30, cfg.StatsRateLimitAllowedPerMin)
	assert.Equal(t, 7, cfg.DefaultMilestoneSteps)
	assert.Equal(t, 200, cfg.MaxMilestones)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load("staging", writeConfig(t))
	assert.Error(t, err)

	_, err = config.Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
