package tracker

import (
	"time"

	"github.com/alexanderramin/focuspro/internal/config"
)

// Settings are the timing constants of the session protocol.
type Settings struct {
	// IdleGraceSeconds is subtracted from the idle trigger time to compute
	// the end time of an idle auto-save.
	IdleGraceSeconds    int
	IdleGraceDelay      time.Duration
	TickInterval        time.Duration
	IdlePollInterval    time.Duration
	ActivityLogInterval time.Duration
	MinimumWorkSeconds  int
	HourlyRate          string
}

// DefaultSettings mirrors config.DefaultConfig.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}

// SettingsFromConfig converts the loaded configuration.
func SettingsFromConfig(cfg config.Config) Settings {
	return Settings{
		IdleGraceSeconds:    cfg.IdleGraceSeconds,
		IdleGraceDelay:      time.Duration(cfg.IdleGraceDelaySeconds) * time.Second,
		TickInterval:        time.Duration(cfg.TickSeconds) * time.Second,
		IdlePollInterval:    time.Duration(cfg.IdlePollSeconds) * time.Second,
		ActivityLogInterval: time.Duration(cfg.ActivityLogSeconds) * time.Second,
		MinimumWorkSeconds:  cfg.MinimumWorkSeconds,
		HourlyRate:          cfg.HourlyRate,
	}
}
