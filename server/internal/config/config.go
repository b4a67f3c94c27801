package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/wingcheck/wingcheck/internal/logging"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort        = 8080
	DefaultCatalogDir      = "catalog"
	DefaultAssessmentTTL   = 30 * time.Minute
	DefaultFeedInterval    = 5 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultMaxAdjustmentMm = 40.0
)

// EnvPrefix prefixes every environment override, e.g. WINGCHECK_HTTP_PORT.
const EnvPrefix = "WINGCHECK_"

// Config holds the server-side configuration parsed from the `server:` section
// of config.yaml. Other top-level keys are ignored.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, WebSocket feed and /metrics listen
	// on (default 8080).
	HTTPPort int `yaml:"http_port" env:"HTTP_PORT"`

	// Catalog locates the reference glider catalog.
	Catalog CatalogConfig `yaml:"catalog" envPrefix:"CATALOG_"`

	// Assessments controls in-memory retention of recent assessments.
	Assessments AssessmentsConfig `yaml:"assessments" envPrefix:"ASSESSMENTS_"`

	// Feed controls the WebSocket broadcast of recent assessments.
	Feed FeedConfig `yaml:"feed" envPrefix:"FEED_"`

	Log logging.Config `yaml:"log" envPrefix:"LOG_"`

	// Trim tunes the trim analysis.
	Trim TrimConfig `yaml:"trim" envPrefix:"TRIM_"`
}

// CatalogConfig locates the directory of model YAML files.
type CatalogConfig struct {
	Dir string `yaml:"dir" env:"DIR"`
	// Watch reloads the catalog when a file in Dir changes.
	Watch bool `yaml:"watch" env:"WATCH"`
}

// AssessmentsConfig controls in-memory assessment retention.
type AssessmentsConfig struct {
	// TTL is how long an assessment remains listed after it was computed.
	// Default: 30m.
	TTL time.Duration `yaml:"ttl" env:"TTL"`
}

// FeedConfig controls the WebSocket feed.
type FeedConfig struct {
	// Interval between broadcasts of the recent-assessment list. Default: 5s.
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
}

// TrimConfig tunes the trim analysis.
type TrimConfig struct {
	// MaxAdjustmentMm caps suggested line adjustments (default 40).
	MaxAdjustmentMm float64 `yaml:"max_adjustment_mm" env:"MAX_ADJUSTMENT_MM"`
}

// Load reads the config file at path, applies environment overrides and
// returns the server configuration. An empty path skips the file. Missing
// fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("server config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("server config: parse yaml: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg.Server, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("server config: parse env: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			Catalog: CatalogConfig{
				Dir: DefaultCatalogDir,
			},
			Assessments: AssessmentsConfig{
				TTL: DefaultAssessmentTTL,
			},
			Feed: FeedConfig{
				Interval: DefaultFeedInterval,
			},
			Log: logging.Config{
				Level:  DefaultLogLevel,
				Format: DefaultLogFormat,
			},
			Trim: TrimConfig{
				MaxAdjustmentMm: DefaultMaxAdjustmentMm,
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	s := cfg.Server
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", s.HTTPPort)
	}
	if s.Catalog.Dir == "" {
		return fmt.Errorf("server.catalog.dir must not be empty")
	}
	if s.Assessments.TTL <= 0 {
		return fmt.Errorf("server.assessments.ttl must be positive")
	}
	if s.Feed.Interval <= 0 {
		return fmt.Errorf("server.feed.interval must be positive")
	}
	switch s.Log.Format {
	case "json", "console", "":
	default:
		return fmt.Errorf("server.log.format %q unknown: want json|console", s.Log.Format)
	}
	if s.Trim.MaxAdjustmentMm <= 0 {
		return fmt.Errorf("server.trim.max_adjustment_mm must be positive")
	}
	return nil
}
