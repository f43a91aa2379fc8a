package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, time.Second, cfg.Assistant.ReplyDelayMin)
	assert.Equal(t, 3*time.Second, cfg.Assistant.ReplyDelayMax)
	assert.Equal(t, 500*time.Millisecond, cfg.Assistant.WelcomeDelay)
	assert.True(t, cfg.Assistant.Inference)
	assert.Equal(t, "python", cfg.Assistant.DefaultVariant)
	assert.False(t, cfg.Logging.Console)
	assert.Equal(t, "https://leetcode-stats-api.herokuapp.com", cfg.Stats.Endpoint)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
store:
  backend: badger
  badger_dir: /tmp/coach-badger
assistant:
  reply_delay_min: 200ms
  reply_delay_max: 1.5s
  inference: false
  default_variant: cpp
server:
  addr: 127.0.0.1:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.Store.Backend)
	assert.Equal(t, "/tmp/coach-badger", cfg.Store.BadgerDir)
	assert.Equal(t, 200*time.Millisecond, cfg.Assistant.ReplyDelayMin)
	assert.Equal(t, 1500*time.Millisecond, cfg.Assistant.ReplyDelayMax)
	assert.False(t, cfg.Assistant.Inference)
	assert.Equal(t, "cpp", cfg.Assistant.DefaultVariant)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	// Untouched sections keep defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Assistant.WelcomeDelay)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "store:\n  backend: badger\n")
	t.Setenv("COACH_STORE", "memory")
	t.Setenv("COACH_REPLY_DELAY_MIN", "0")
	t.Setenv("COACH_REPLY_DELAY_MAX", "250ms")
	t.Setenv("COACH_INFERENCE", "false")
	t.Setenv("COACH_SEED", "42")
	t.Setenv("COACH_LOG_CONSOLE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, time.Duration(0), cfg.Assistant.ReplyDelayMin)
	assert.Equal(t, 250*time.Millisecond, cfg.Assistant.ReplyDelayMax)
	assert.False(t, cfg.Assistant.Inference)
	assert.Equal(t, uint64(42), cfg.Assistant.Seed)
	assert.True(t, cfg.Logging.Console)
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("COACH_REPLY_DELAY_MIN", "soon")
	t.Setenv("COACH_INFERENCE", "maybe")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Assistant.ReplyDelayMin)
	assert.True(t, cfg.Assistant.Inference)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "store: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvertedDelays(t *testing.T) {
	t.Setenv("COACH_REPLY_DELAY_MIN", "5s")
	t.Setenv("COACH_REPLY_DELAY_MAX", "1s")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "reply_delay_max")
}

func TestPath(t *testing.T) {
	t.Setenv("COACH_CONFIG", "/etc/coach.yaml")
	assert.Equal(t, "/etc/coach.yaml", Path())

	t.Setenv("COACH_CONFIG", "")
	assert.Equal(t, filepath.Join(DataDir(), "config.yaml"), Path())
}
