package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the client needs to talk to the backend and to
// drive the session timer.
type Config struct {
	APIEndpoint      string
	RequestTimeoutMs int
	LogCalls         bool

	DBPath   string
	LogFile  string
	Language string

	// IdleGraceSeconds is subtracted from the idle trigger time when an
	// idle session is auto-saved.
	IdleGraceSeconds int
	// IdleGraceDelaySeconds is how long the idle countdown is shown before
	// the auto-save fires.
	IdleGraceDelaySeconds int
	TickSeconds           int
	IdlePollSeconds       int
	ActivityLogSeconds    int
	MinimumWorkSeconds    int
	HourlyRate            string
}

// DefaultConfig returns the values the web client shipped with.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".focuspro")
	return Config{
		APIEndpoint:           "http://127.0.0.1:5000",
		RequestTimeoutMs:      10000,
		LogCalls:              true,
		DBPath:                filepath.Join(dir, "focuspro.db"),
		LogFile:               filepath.Join(dir, "focuspro.log"),
		Language:              "en",
		IdleGraceSeconds:      180,
		IdleGraceDelaySeconds: 5,
		TickSeconds:           1,
		IdlePollSeconds:       10,
		ActivityLogSeconds:    60,
		MinimumWorkSeconds:    10,
		HourlyRate:            "5.00",
	}
}

// DefaultPath returns ~/.focuspro/focuspro.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focuspro.yaml"
	}
	return filepath.Join(home, ".focuspro", "focuspro.yaml")
}

// Load layers defaults, the optional YAML file at path and FOCUSPRO_*
// environment variables, in that order. A missing file is not an error.
// Non-positive intervals fall back to their defaults.
func Load(path string) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FOCUSPRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_endpoint", def.APIEndpoint)
	v.SetDefault("request_timeout_ms", def.RequestTimeoutMs)
	v.SetDefault("log_calls", def.LogCalls)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("language", def.Language)
	v.SetDefault("idle_grace_seconds", def.IdleGraceSeconds)
	v.SetDefault("idle_grace_delay_seconds", def.IdleGraceDelaySeconds)
	v.SetDefault("tick_seconds", def.TickSeconds)
	v.SetDefault("idle_poll_seconds", def.IdlePollSeconds)
	v.SetDefault("activity_log_seconds", def.ActivityLogSeconds)
	v.SetDefault("minimum_work_seconds", def.MinimumWorkSeconds)
	v.SetDefault("hourly_rate", def.HourlyRate)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return def, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := Config{
		APIEndpoint:           strings.TrimRight(v.GetString("api_endpoint"), "/"),
		RequestTimeoutMs:      positiveOr(v.GetInt("request_timeout_ms"), def.RequestTimeoutMs),
		LogCalls:              v.GetBool("log_calls"),
		DBPath:                v.GetString("db_path"),
		LogFile:               v.GetString("log_file"),
		Language:              v.GetString("language"),
		IdleGraceSeconds:      nonNegativeOr(v.GetInt("idle_grace_seconds"), def.IdleGraceSeconds),
		IdleGraceDelaySeconds: positiveOr(v.GetInt("idle_grace_delay_seconds"), def.IdleGraceDelaySeconds),
		TickSeconds:           positiveOr(v.GetInt("tick_seconds"), def.TickSeconds),
		IdlePollSeconds:       positiveOr(v.GetInt("idle_poll_seconds"), def.IdlePollSeconds),
		ActivityLogSeconds:    positiveOr(v.GetInt("activity_log_seconds"), def.ActivityLogSeconds),
		MinimumWorkSeconds:    nonNegativeOr(v.GetInt("minimum_work_seconds"), def.MinimumWorkSeconds),
		HourlyRate:            v.GetString("hourly_rate"),
	}
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = def.APIEndpoint
	}
	return cfg, nil
}

// RequestTimeout returns the per-call backend timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

func positiveOr(n, fallback int) int {
	if n > 0 {
		return n
	}
	return fallback
}

func nonNegativeOr(n, fallback int) int {
	if n >= 0 {
		return n
	}
	return fallback
}
