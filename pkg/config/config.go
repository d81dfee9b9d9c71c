// Package config loads nesview settings from viper: config file, NESVIEW_*
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Manu343726/nesview/pkg/logging"
	"github.com/Manu343726/nesview/pkg/utils"
	"github.com/Manu343726/nesview/pkg/view"
	"github.com/spf13/viper"
)

// Setting keys
const (
	KeyBackend         = "backend"
	KeyMode            = "mode"
	KeyTimeout         = "timeout"
	KeyRefreshInterval = "refresh-interval"
	KeyWindow          = "window"
	KeyNoColor         = "no-color"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
)

// EnvPrefix prefixes every environment variable read by nesview
const EnvPrefix = "NESVIEW"

const DefaultBackend = "http://localhost:8080"

var ErrInvalidConfig = errors.New("invalid configuration")

// LogConfig holds the logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config holds every nesview setting
type Config struct {
	Backend         string        `mapstructure:"backend"`
	Mode            string        `mapstructure:"mode"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh-interval"`
	Window          int           `mapstructure:"window"`
	NoColor         bool          `mapstructure:"no-color"`
	Log             LogConfig     `mapstructure:"log"`
}

// SetDefaults registers the default value of every key and the environment
// lookup rules
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyMode, view.ModeFull.String())
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyRefreshInterval, time.Duration(0))
	v.SetDefault(KeyWindow, 0)
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration and validates it
func Load(v *viper.Viper) (Config, error) {
	var config Config

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, utils.MakeError(ErrInvalidConfig, "%v", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks every setting
func (c Config) Validate() error {
	if strings.TrimSpace(c.Backend) == "" {
		return utils.MakeError(ErrInvalidConfig, "%v must not be empty", KeyBackend)
	}

	if _, err := view.ParseMode(c.Mode); err != nil {
		return utils.MakeError(ErrInvalidConfig, "%v: %v", KeyMode, err)
	}

	if c.Timeout < 0 {
		return utils.MakeError(ErrInvalidConfig, "%v must not be negative, got %v", KeyTimeout, c.Timeout)
	}

	if c.RefreshInterval < 0 {
		return utils.MakeError(ErrInvalidConfig, "%v must not be negative, got %v", KeyRefreshInterval, c.RefreshInterval)
	}

	if c.Window < 0 {
		return utils.MakeError(ErrInvalidConfig, "%v must not be negative, got %v", KeyWindow, c.Window)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return utils.MakeError(ErrInvalidConfig, "%v: %v", KeyLogLevel, err)
	}

	return nil
}

// ViewMode returns the parsed step refresh mode
func (c Config) ViewMode() view.Mode {
	mode, err := view.ParseMode(c.Mode)
	if err != nil {
		panic(fmt.Sprintf("unvalidated mode %q", c.Mode))
	}
	return mode
}

// LogLevel returns the parsed log level
func (c Config) LogLevel() slog.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("unvalidated log level %q", c.Log.Level))
	}
	return level
}
