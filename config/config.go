package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds runner settings only. Contract behavior (curve, voting
// window, record layouts) is fixed by the program and never configurable.
type Config struct {
	// StateFile is where the demo runner persists the memory host.
	StateFile string `envconfig:"STATE_FILE" default:"state.json"`
	// LogLevel is a zap level string: debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// LogFile, when set, routes logs through a rotating file instead of
	// stderr.
	LogFile    string `envconfig:"LOG_FILE"`
	LogMaxSize int    `envconfig:"LOG_MAX_SIZE" default:"32"` // megabytes
	LogBackups int    `envconfig:"LOG_BACKUPS" default:"3"`
}

// Load reads UF_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("uf", &cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return &cfg, nil
}
