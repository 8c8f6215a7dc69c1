package junction

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable timing values and the scheduling mode
type Config struct {
	Mode            Mode
	GreenTime       time.Duration
	YellowTime      time.Duration
	ReleaseInterval time.Duration
}

// DefaultConfig returns the stock intersection timings
func DefaultConfig() Config {
	return Config{
		Mode:            ModeVehicleActuated,
		GreenTime:       20 * time.Second,
		YellowTime:      3 * time.Second,
		ReleaseInterval: 600 * time.Millisecond,
	}
}

// Validate checks that every duration is positive and the mode is known
func (c Config) Validate() error {
	if c.GreenTime <= 0 {
		return NewInvalidDurationError("green_time", c.GreenTime.Seconds())
	}
	if c.YellowTime <= 0 {
		return NewInvalidDurationError("yellow_time", c.YellowTime.Seconds())
	}
	if c.ReleaseInterval <= 0 {
		return NewInvalidDurationError("release_interval", c.ReleaseInterval.Seconds())
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}

// ConfigUpdate carries a partial configuration change. Nil fields are left
// untouched; provided durations must be positive.
type ConfigUpdate struct {
	GreenTime       *time.Duration
	YellowTime      *time.Duration
	ReleaseInterval *time.Duration
}

// apply merges the update into c, rejecting non-positive durations before
// any field is mutated
func (u ConfigUpdate) apply(c *Config) error {
	if u.GreenTime != nil && *u.GreenTime <= 0 {
		return NewInvalidDurationError("green_time", u.GreenTime.Seconds())
	}
	if u.YellowTime != nil && *u.YellowTime <= 0 {
		return NewInvalidDurationError("yellow_time", u.YellowTime.Seconds())
	}
	if u.ReleaseInterval != nil && *u.ReleaseInterval <= 0 {
		return NewInvalidDurationError("release_interval", u.ReleaseInterval.Seconds())
	}
	if u.GreenTime != nil {
		c.GreenTime = *u.GreenTime
	}
	if u.YellowTime != nil {
		c.YellowTime = *u.YellowTime
	}
	if u.ReleaseInterval != nil {
		c.ReleaseInterval = *u.ReleaseInterval
	}
	return nil
}

// configFile is the on-disk YAML shape, durations in seconds like the
// HTTP API
type configFile struct {
	Mode            string   `yaml:"mode"`
	GreenTime       *float64 `yaml:"green_time"`
	YellowTime      *float64 `yaml:"yellow_time"`
	ReleaseInterval *float64 `yaml:"release_interval"`
}

// LoadConfig reads a YAML settings file, filling unset fields from
// DefaultConfig
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if file.Mode != "" {
		mode, err := ParseMode(file.Mode)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if file.GreenTime != nil {
		cfg.GreenTime = Seconds(*file.GreenTime)
	}
	if file.YellowTime != nil {
		cfg.YellowTime = Seconds(*file.YellowTime)
	}
	if file.ReleaseInterval != nil {
		cfg.ReleaseInterval = Seconds(*file.ReleaseInterval)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Seconds converts a fractional seconds value to a time.Duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
