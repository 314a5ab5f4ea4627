package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tickfsm/internal/config"
)

func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FrameRate)
	assert.Equal(t, 4, cfg.FixedRate)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "tickfsm.log", cfg.LogFile)
	assert.False(t, cfg.Telemetry)
	assert.Nil(t, cfg.OTLPHeaders())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TICKFSM_SEED", "12345")
	t.Setenv("TICKFSM_FPS", "60")
	t.Setenv("TICKFSM_FIXED_HZ", "10")
	t.Setenv("TICKFSM_LOG_FORMAT", "json")
	t.Setenv("HONEYCOMB_TICKFSM_API_KEY", "secret")

	cfg, err := config.Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, int64(12345), cfg.Seed)
	assert.Equal(t, 60, cfg.FrameRate)
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
	assert.Equal(t, 100*time.Millisecond, cfg.FixedInterval())
	assert.Equal(t, map[string]string{
		"x-honeycomb-team":    "secret",
		"x-honeycomb-dataset": "tickfsm",
	}, cfg.OTLPHeaders())
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TICKFSM_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TICKFSM_LOG_LEVEL") })

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("TICKFSM_FPS", "fast")

	_, err := config.Load(noEnvFile(t))
	require.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestValidate(t *testing.T) {
	valid := config.Config{FrameRate: 30, FixedRate: 4, LogFormat: "text"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero fps", func(c *config.Config) { c.FrameRate = 0 }},
		{"fps too high", func(c *config.Config) { c.FrameRate = 1000 }},
		{"fixed above frame", func(c *config.Config) { c.FixedRate = 31 }},
		{"bad format", func(c *config.Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}
