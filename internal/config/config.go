// Package config loads and validates the scanner configuration from a
// YAML file and JOBSCOUT_* environment variables, env taking precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"jobscout/internal/filter"
)

// Config is the root configuration for a scanner process.
type Config struct {
	Search   SearchConfig   `mapstructure:"search"`
	Sources  SourcesConfig  `mapstructure:"sources"`
	Output   OutputConfig   `mapstructure:"output"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Ops      OpsConfig      `mapstructure:"ops"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SearchConfig controls where we search and which experience levels pass.
type SearchConfig struct {
	Location           string `mapstructure:"location"`
	ExperienceMinYears int    `mapstructure:"experience_min_years"`
	ExperienceMaxYears int    `mapstructure:"experience_max_years"`
}

// SourcesConfig holds per-provider credentials and fetch limits.
type SourcesConfig struct {
	JSearch        JSearchConfig  `mapstructure:"jsearch"`
	Adzuna         AdzunaConfig   `mapstructure:"adzuna"`
	RemoteOK       RemoteOKConfig `mapstructure:"remoteok"`
	MaxPages       int            `mapstructure:"max_pages"`
	RequestTimeout time.Duration  `mapstructure:"request_timeout"`
}

type JSearchConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	PageDelay time.Duration `mapstructure:"page_delay"`
}

type AdzunaConfig struct {
	AppID          string `mapstructure:"app_id"`
	AppKey         string `mapstructure:"app_key"`
	CountryCode    string `mapstructure:"country_code"`
	ResultsPerPage int    `mapstructure:"results_per_page"`
}

type RemoteOKConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// OutputConfig controls where CSV exports land.
type OutputConfig struct {
	Dir       string `mapstructure:"dir"`
	CSVPrefix string `mapstructure:"csv_prefix"`
}

// NotifyConfig selects the summary publisher. An empty topic disables
// publishing and the process falls back to a no-op publisher.
type NotifyConfig struct {
	ProjectID string `mapstructure:"project_id"`
	Topic     string `mapstructure:"topic"`
}

// ArchiveConfig selects the CSV archive store. An empty bucket disables
// archiving.
type ArchiveConfig struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

// ScheduleConfig controls the watch loop cadence and retry policy.
type ScheduleConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// OpsConfig configures the health and metrics endpoint.
type OpsConfig struct {
	Port int `mapstructure:"port"`
}

type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load reads configuration from the given file (optional) and from
// JOBSCOUT_* environment variables, applying defaults for everything
// left unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("JOBSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.location", "United States")
	v.SetDefault("search.experience_min_years", 3)
	v.SetDefault("search.experience_max_years", 7)

	v.SetDefault("sources.max_pages", 3)
	v.SetDefault("sources.request_timeout", 30*time.Second)
	v.SetDefault("sources.jsearch.api_key", "")
	v.SetDefault("sources.jsearch.page_delay", time.Second)
	v.SetDefault("sources.adzuna.app_id", "")
	v.SetDefault("sources.adzuna.app_key", "")
	v.SetDefault("sources.adzuna.country_code", "us")
	v.SetDefault("sources.adzuna.results_per_page", 20)
	v.SetDefault("sources.remoteok.enabled", true)

	v.SetDefault("output.dir", "output")
	v.SetDefault("output.csv_prefix", "data_engineer_jobs")

	// Keys without meaningful defaults still need registering so env
	// overrides reach Unmarshal.
	v.SetDefault("notify.project_id", "")
	v.SetDefault("notify.topic", "")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.prefix", "job-scans")

	v.SetDefault("schedule.interval", 6*time.Hour)
	v.SetDefault("schedule.retries", 2)
	v.SetDefault("schedule.retry_delay", 5*time.Minute)

	v.SetDefault("ops.port", 8080)

	v.SetDefault("logging.development", false)
}

// Validate rejects configurations that would make a run meaningless.
func (c *Config) Validate() error {
	if c.Search.ExperienceMinYears < 0 {
		return fmt.Errorf("search.experience_min_years must not be negative, got %d", c.Search.ExperienceMinYears)
	}
	if c.Search.ExperienceMaxYears < c.Search.ExperienceMinYears {
		return fmt.Errorf("search.experience_max_years (%d) must not be below search.experience_min_years (%d)",
			c.Search.ExperienceMaxYears, c.Search.ExperienceMinYears)
	}
	if c.Sources.MaxPages < 1 {
		return fmt.Errorf("sources.max_pages must be at least 1, got %d", c.Sources.MaxPages)
	}
	if c.Sources.RequestTimeout <= 0 {
		return fmt.Errorf("sources.request_timeout must be positive, got %s", c.Sources.RequestTimeout)
	}
	if c.Sources.Adzuna.ResultsPerPage < 1 {
		return fmt.Errorf("sources.adzuna.results_per_page must be at least 1, got %d", c.Sources.Adzuna.ResultsPerPage)
	}
	if c.Schedule.Interval <= 0 {
		return fmt.Errorf("schedule.interval must be positive, got %s", c.Schedule.Interval)
	}
	if c.Schedule.Retries < 0 {
		return fmt.Errorf("schedule.retries must not be negative, got %d", c.Schedule.Retries)
	}
	if c.Ops.Port < 1 || c.Ops.Port > 65535 {
		return fmt.Errorf("ops.port must be a valid TCP port, got %d", c.Ops.Port)
	}
	return nil
}

// Window returns the experience window described by the search section.
func (c *Config) Window() filter.Window {
	return filter.Window{Min: c.Search.ExperienceMinYears, Max: c.Search.ExperienceMaxYears}
}
