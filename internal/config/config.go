package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API   APIConfig   `yaml:"api" mapstructure:"api"`
	Batch BatchConfig `yaml:"batch" mapstructure:"batch"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// APIConfig holds Apollo API credentials and transport settings. Key is
// only ever read from configuration, typically the APOLLO_API_KEY
// environment variable, and is never logged.
type APIConfig struct {
	Key            string  `yaml:"key" mapstructure:"key"`
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	RateLimitDelay float64 `yaml:"rate_limit_delay" mapstructure:"rate_limit_delay"` // seconds between requests
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// RateLimit returns the configured inter-request delay as a duration.
func (a APIConfig) RateLimit() time.Duration {
	return time.Duration(a.RateLimitDelay * float64(time.Second))
}

// Timeout returns the configured per-request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// BatchConfig configures batch input and output handling.
type BatchConfig struct {
	Input          string `yaml:"input" mapstructure:"input"`
	Output         string `yaml:"output" mapstructure:"output"`
	Format         string `yaml:"format" mapstructure:"format"`
	LinkedInColumn string `yaml:"linkedin_column" mapstructure:"linkedin_column"`
	PolicyFile     string `yaml:"policy_file" mapstructure:"policy_file"`
	ProgressEvery  int    `yaml:"progress_every" mapstructure:"progress_every"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("APOLLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. api.key defaults to empty so the APOLLO_API_KEY env
	// var is picked up by Unmarshal.
	v.SetDefault("api.key", "")
	v.SetDefault("api.base_url", "https://api.apollo.io/v1")
	v.SetDefault("api.rate_limit_delay", 0.4)
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("batch.input", "input.csv")
	v.SetDefault("batch.output", "apollo_output.csv")
	v.SetDefault("batch.format", "csv")
	v.SetDefault("batch.linkedin_column", "linkedin_url")
	v.SetDefault("batch.policy_file", "")
	v.SetDefault("batch.progress_every", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks invariants that must hold before any lookups are
// issued. All problems are reported at once.
func (c *Config) Validate() error {
	var problems []string

	if c.API.Key == "" {
		problems = append(problems, "api.key is required (set APOLLO_API_KEY)")
	}
	if c.API.RateLimitDelay < 0 {
		problems = append(problems, "api.rate_limit_delay must be >= 0")
	}
	if c.API.TimeoutSecs <= 0 {
		problems = append(problems, "api.timeout_secs must be > 0")
	}
	switch c.Batch.Format {
	case "csv", "json", "xlsx":
	default:
		problems = append(problems, fmt.Sprintf("batch.format %q is not supported (use csv, json or xlsx)", c.Batch.Format))
	}
	if c.Batch.Input == "" {
		problems = append(problems, "batch.input is required")
	}
	if c.Batch.Output == "" {
		problems = append(problems, "batch.output is required")
	}
	if c.Batch.LinkedInColumn == "" {
		problems = append(problems, "batch.linkedin_column is required")
	}
	if c.Batch.ProgressEvery < 1 {
		problems = append(problems, "batch.progress_every must be >= 1")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
