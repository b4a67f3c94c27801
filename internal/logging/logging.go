// Package logging builds the zap loggers used by the server and the workbench.
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration.
type Config struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Format      string `yaml:"format" env:"FORMAT"` // "json" or "console"
	OutputPath  string `yaml:"output_path" env:"OUTPUT_PATH"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// New builds a logger from cfg. An unparsable level falls back to info and
// any format other than "console" is json.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zc.Level = level

	if cfg.Format == "console" {
		zc.Encoding = "console"
	} else {
		zc.Encoding = "json"
	}

	if cfg.OutputPath != "" {
		zc.OutputPaths = []string{cfg.OutputPath}
	}

	return zc.Build()
}

// Must is New for program entry points; it falls back to a production logger
// when cfg cannot be built.
func Must(cfg Config) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		l, _ = zap.NewProduction()
		l.Warn("logging: invalid config, using defaults", zap.Error(err))
	}
	return l
}
