// Package config loads coach settings from defaults, an optional YAML file,
// a .env file and COACH_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all coach configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Assistant AssistantConfig `yaml:"assistant"`
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Stats     StatsConfig     `yaml:"stats"`
}

// StoreConfig selects the settings backend.
type StoreConfig struct {
	Backend     string `yaml:"backend"` // sqlite, badger, redis, memory
	DBPath      string `yaml:"db_path"`
	BadgerDir   string `yaml:"badger_dir"`
	RedisURL    string `yaml:"redis_url"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// AssistantConfig tunes reply behavior.
type AssistantConfig struct {
	ReplyDelayMin  time.Duration `yaml:"reply_delay_min"`
	ReplyDelayMax  time.Duration `yaml:"reply_delay_max"`
	WelcomeDelay   time.Duration `yaml:"welcome_delay"`
	Inference      bool          `yaml:"inference"`
	DefaultVariant string        `yaml:"default_variant"`
	Seed           uint64        `yaml:"seed"` // 0 picks a random seed
}

type LoggingConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"` // debug, info, warn, error
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type StatsConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DataDir returns ~/.coach, or ./.coach when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coach"
	}
	return filepath.Join(home, ".coach")
}

// DefaultConfig returns a Config with sensible defaults rooted at DataDir.
func DefaultConfig() Config {
	dir := DataDir()
	return Config{
		Store: StoreConfig{
			Backend:     "sqlite",
			DBPath:      filepath.Join(dir, "coach.db"),
			BadgerDir:   filepath.Join(dir, "badger"),
			RedisURL:    "redis://localhost:6379/0",
			RedisPrefix: "coach:",
		},
		Assistant: AssistantConfig{
			ReplyDelayMin:  time.Second,
			ReplyDelayMax:  3 * time.Second,
			WelcomeDelay:   500 * time.Millisecond,
			Inference:      true,
			DefaultVariant: "python",
		},
		Logging: LoggingConfig{
			File:       filepath.Join(dir, "logs", "coach.log"),
			Level:      "info",
			Console:    false,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: time.Hour,
		},
		Stats: StatsConfig{
			Endpoint: "https://leetcode-stats-api.herokuapp.com",
			Timeout:  10 * time.Second,
		},
	}
}

// Path returns the config file location: COACH_CONFIG or ~/.coach/config.yaml.
func Path() string {
	if v := os.Getenv("COACH_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(DataDir(), "config.yaml")
}

// Load builds the configuration. A missing YAML file or .env file is not an
// error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	// .env never overrides variables already set in the process environment.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if c.Assistant.ReplyDelayMin < 0 || c.Assistant.ReplyDelayMax < 0 || c.Assistant.WelcomeDelay < 0 {
		return errors.New("config: delays must not be negative")
	}
	if c.Assistant.ReplyDelayMax < c.Assistant.ReplyDelayMin {
		return fmt.Errorf("config: reply_delay_max %s is below reply_delay_min %s",
			c.Assistant.ReplyDelayMax, c.Assistant.ReplyDelayMin)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Store.Backend, "COACH_STORE")
	setString(&cfg.Store.DBPath, "COACH_DB")
	setString(&cfg.Store.BadgerDir, "COACH_BADGER_DIR")
	setString(&cfg.Store.RedisURL, "COACH_REDIS_URL")
	setString(&cfg.Store.RedisPrefix, "COACH_REDIS_PREFIX")

	setDuration(&cfg.Assistant.ReplyDelayMin, "COACH_REPLY_DELAY_MIN")
	setDuration(&cfg.Assistant.ReplyDelayMax, "COACH_REPLY_DELAY_MAX")
	setDuration(&cfg.Assistant.WelcomeDelay, "COACH_WELCOME_DELAY")
	if v := os.Getenv("COACH_INFERENCE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Assistant.Inference = b
		}
	}
	setString(&cfg.Assistant.DefaultVariant, "COACH_DEFAULT_VARIANT")
	if v := os.Getenv("COACH_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Assistant.Seed = n
		}
	}

	setString(&cfg.Logging.File, "COACH_LOG_FILE")
	setString(&cfg.Logging.Level, "COACH_LOG_LEVEL")
	if v := os.Getenv("COACH_LOG_CONSOLE"); v != "" {
		cfg.Logging.Console, _ = strconv.ParseBool(v)
	}

	setString(&cfg.Server.Addr, "COACH_ADDR")
	setDuration(&cfg.Server.SessionTTL, "COACH_SESSION_TTL")

	setString(&cfg.Stats.Endpoint, "COACH_STATS_ENDPOINT")
	setDuration(&cfg.Stats.Timeout, "COACH_STATS_TIMEOUT")
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("1.5s") or bare milliseconds ("1500").
func setDuration(dst *time.Duration, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		*dst = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		*dst = time.Duration(n) * time.Millisecond
	}
}
