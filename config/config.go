// Package config loads the daemon configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the planner daemon.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Planner   PlannerConfig   `mapstructure:"planner"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Validate ensures the server section is usable.
func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("server.address is required")
	}
	return nil
}

// PlannerConfig tunes the workflow layer.
type PlannerConfig struct {
	SeedSampleTasks   bool `mapstructure:"seed_sample_tasks"`
	MemorySearchLimit int  `mapstructure:"memory_search_limit"`
	RecentEventsLimit int  `mapstructure:"recent_events_limit"`
}

// Normalize applies defaults for unset planner values.
func (p PlannerConfig) Normalize() PlannerConfig {
	if p.MemorySearchLimit <= 0 {
		p.MemorySearchLimit = 5
	}
	if p.RecentEventsLimit <= 0 {
		p.RecentEventsLimit = 10
	}
	return p
}

// TasksConfig controls the external task source sync.
type TasksConfig struct {
	Source       string `mapstructure:"source"`        // "sample" or "" to disable
	SyncSchedule string `mapstructure:"sync_schedule"` // @daily, @hourly or 5-field cron
}

// TelemetryConfig controls the /metrics endpoint.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig reads configuration from path, or from the usual search paths
// when path is empty. Environment variables prefixed with DAYPLAN_ override
// file values. A missing file is fine; defaults apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("server.address", ":8787")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("planner.seed_sample_tasks", true)
	v.SetDefault("planner.memory_search_limit", 5)
	v.SetDefault("planner.recent_events_limit", 10)
	v.SetDefault("tasks.source", "sample")
	v.SetDefault("tasks.sync_schedule", "@daily")
	v.SetDefault("telemetry.enabled", true)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("DAYPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Planner = cfg.Planner.Normalize()
	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
