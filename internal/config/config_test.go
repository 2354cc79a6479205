package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.PerceptionTimeout)
	assert.Equal(t, int64(2), cfg.PerceptionWorkers)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 64, cfg.CacheEntries)
	assert.Equal(t, "history/commands.jsonl", cfg.HistoryPath)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DESKPILOT_ADDR", ":9090")
	t.Setenv("DESKPILOT_PERCEPTION_TIMEOUT", "3s")
	t.Setenv("DESKPILOT_CACHE_ENTRIES", "16")
	t.Setenv("DESKPILOT_PRETTY_LOGS", "false")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.PerceptionTimeout)
	assert.Equal(t, 16, cfg.CacheEntries)
	assert.False(t, cfg.PrettyLogs)
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DESKPILOT_PERCEPTION_TIMEOUT", "pronto")
	t.Setenv("DESKPILOT_CACHE_ENTRIES", "muchas")

	cfg := FromEnv()
	assert.Equal(t, 10*time.Second, cfg.PerceptionTimeout)
	assert.Equal(t, 64, cfg.CacheEntries)
}
