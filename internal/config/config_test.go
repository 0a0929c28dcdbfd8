package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	configContent := `
listen_addr: "0.0.0.0:9090"
greeting: "Hi"
cors_origins: ["https://example.com"]
log_format: text
log_level: debug
log_buffer_size: 50
timing_precision: 6
metrics_enabled: true
shutdown_timeout_seconds: 5
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := LoadFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "Hi", cfg.Greeting)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 50, cfg.LogBufferSize)
	assert.Equal(t, 6, cfg.TimingPrecision)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 5, cfg.ShutdownTimeoutSeconds)

	// Untouched fields keep their defaults.
	assert.Equal(t, 30, cfg.ReadTimeoutSeconds)
	assert.Equal(t, 120, cfg.IdleTimeoutSeconds)
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr)
	assert.Equal(t, "Hello World", cfg.Greeting)
	assert.Equal(t, 3, cfg.TimingPrecision)
}

func TestLoadFileInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("listen_addr: [unterminated"), 0644))

	_, err := LoadFile(configPath)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("greeting: from-file\n"), 0644))

	t.Setenv("REQTIMER_CONFIG_PATH", configPath)
	t.Setenv("REQTIMER_LISTEN_ADDR", ":7000")
	t.Setenv("REQTIMER_CORS_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("REQTIMER_TIMING_PRECISION", "1")
	t.Setenv("REQTIMER_METRICS_ENABLED", "1")
	t.Setenv("REQTIMER_LOG_BUFFER_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Greeting)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 1, cfg.TimingPrecision)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 10000, cfg.LogBufferSize, "unparseable overrides are ignored")
}
