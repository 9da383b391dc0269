// Package config reads chainsimp settings from the environment.
package config

import (
	"github.com/xyproto/env/v2"

	"github.com/razeghi71/chainsimp/logger"
)

// Environment variable names.
const (
	EnvOptimize  = "CHAINSIMP_OPTIMIZE"
	EnvColumn    = "CHAINSIMP_COLUMN"
	EnvLogLevel  = "CHAINSIMP_LOG_LEVEL"
	EnvLogFormat = "CHAINSIMP_LOG_FORMAT"
	EnvLogFile   = "CHAINSIMP_LOG_FILE"
)

// Config holds the settings that command-line flags may override.
type Config struct {
	Optimize  bool
	Column    string
	LogLevel  string
	LogFormat string
	LogFile   string
}

// FromEnv builds a Config from the environment, using defaults for unset
// variables. The environment is read again on every call.
func FromEnv() Config {
	env.Load()
	return Config{
		Optimize:  env.Bool(EnvOptimize),
		Column:    env.Str(EnvColumn, ""),
		LogLevel:  env.Str(EnvLogLevel, "warn"),
		LogFormat: env.Str(EnvLogFormat, "text"),
		LogFile:   env.Str(EnvLogFile, ""),
	}
}

// Logger converts the logging settings to a logger configuration.
func (c Config) Logger() (logger.Config, error) {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.Config{}, err
	}
	cfg := logger.DefaultConfig()
	cfg.Level = level
	cfg.Format = c.LogFormat
	cfg.LogFile = c.LogFile
	cfg.AddSource = level == logger.LevelDebug
	return cfg, nil
}
