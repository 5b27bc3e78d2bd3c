package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"API_PORT", "METRICS_PORT", "LOG_LEVEL", "LOG_FORMAT", "MAX_NODES", "DEFAULT_NODES", "RAND_SEED"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	// empty strings are not numbers, so numeric keys fall back too
	assert.Equal(t, Config{
		ApiPort:      8080,
		MetricsPort:  9090,
		LogLevel:     "info",
		LogFormat:    "json",
		MaxNodes:     30,
		DefaultNodes: 5,
		RandSeed:     0,
	}, cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "8181")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("MAX_NODES", "7")
	t.Setenv("DEFAULT_NODES", "12")
	t.Setenv("RAND_SEED", "123456789012")
	t.Setenv("METRICS_PORT", "nope")

	cfg := FromEnv()
	assert.Equal(t, 8181, cfg.ApiPort)
	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 7, cfg.MaxNodes)
	assert.Equal(t, 7, cfg.DefaultNodes)
	assert.Equal(t, int64(123456789012), cfg.RandSeed)
}
