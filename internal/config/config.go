// Package config holds the settings of the srs demonstration driver and builds its logger.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errs "github.com/osmike/pausable/internal/error"
)

// EnvPrefix is the prefix of environment variables overriding flags, e.g. SRS_PHASE=500ms.
const EnvPrefix = "SRS"

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config is the driver configuration.
type Config struct {
	// Name of the demonstrated worker.
	Name string `mapstructure:"name"`

	// Iterations is the worker's iteration budget; 0 runs until stopped.
	Iterations int64 `mapstructure:"iterations"`

	// Phase is the delay between two control calls.
	Phase time.Duration `mapstructure:"phase"`

	// Unit is how long one simulated work unit takes.
	Unit time.Duration `mapstructure:"unit"`

	Logging Logging `mapstructure:"logging"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	// File, when set, receives the logs instead of stderr and is rotated.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size-mb"`
	MaxBackups int    `mapstructure:"max-backups"`
}

// BindFlags declares the driver flags on fs and binds them to a new viper instance.
// Environment variables with EnvPrefix take precedence over flag defaults.
func BindFlags(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	fs.String("name", "SRS", "Name of the worker.")
	fs.Int64("iterations", 0, "Iteration budget of the worker, 0 to run until stopped.")
	fs.Duration("phase", 2*time.Second, "Delay between suspend, resume and stop.")
	fs.Duration("unit", 100*time.Millisecond, "Duration of one simulated work unit.")
	fs.String("log-level", "info", "Log level: debug, info, warn or error.")
	fs.String("log-format", LogFormatConsole, "Log format: console or json.")
	fs.String("log-file", "", "Write logs to this file instead of stderr.")
	fs.Int("log-max-size-mb", 100, "Size in megabytes after which the log file is rotated.")
	fs.Int("log-max-backups", 3, "Number of rotated log files to keep.")

	binds := map[string]string{
		"name":                "name",
		"iterations":          "iterations",
		"phase":               "phase",
		"unit":                "unit",
		"logging.level":       "log-level",
		"logging.format":      "log-format",
		"logging.file":        "log-file",
		"logging.max-size-mb": "log-max-size-mb",
		"logging.max-backups": "log-max-backups",
	}
	for key, flag := range binds {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding flag %q: %w", flag, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the optional YAML config file and decodes the merged configuration.
func Load(v *viper.Viper, file string) (Config, error) {
	var c Config
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("error while reading the config file: %w", err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("error while unmarshaling the config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Iterations < 0:
		return errs.New(errs.ErrInvalidConfig, "iterations must not be negative")
	case c.Phase <= 0:
		return errs.New(errs.ErrInvalidConfig, "phase must be positive")
	case c.Unit < 0:
		return errs.New(errs.ErrInvalidConfig, "unit must not be negative")
	}
	switch c.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return errs.New(errs.ErrInvalidConfig, fmt.Sprintf("unknown log format %q", c.Logging.Format))
	}
	return nil
}
