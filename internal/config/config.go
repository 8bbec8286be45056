// Package config loads cmdjen settings from defaults, an optional config
// file, CMDJEN_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/grafana/cmdjen/commands"
)

const (
	// ConfigFileName is the name of the config file looked up in the search
	// directory, without extension.
	ConfigFileName = ".cmdjen"
	// EnvPrefix prefixes environment variable overrides, e.g. CMDJEN_OUT.
	EnvPrefix = "CMDJEN"
)

// Config holds the settings of one generation run.
type Config struct {
	// Patterns are the package directories to scan. A "/..." suffix scans
	// recursively.
	Patterns []string `mapstructure:"patterns"`
	// Out is the directory the descriptor is written to.
	Out string `mapstructure:"out"`
	// File is the descriptor file name, relative to Out.
	File string `mapstructure:"file"`
	// Quoting is "compat" or "strict".
	Quoting string `mapstructure:"quoting"`
	// Order is "insertion" or "name".
	Order string `mapstructure:"order"`
	// Check verifies the descriptor on disk instead of writing it.
	Check    bool   `mapstructure:"check"`
	LogLevel string `mapstructure:"log-level"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Patterns: []string{"."},
		Out:      ".",
		File:     commands.DefaultFileName,
		Quoting:  commands.QuotingCompat.String(),
		Order:    commands.OrderInsertion.String(),
		LogLevel: log.InfoLevel.String(),
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile, if set, is the only config file read, and must exist.
	ConfigFile string
	// SearchDir is where ConfigFileName is looked up when ConfigFile is
	// empty. Defaults to the working directory. A missing file is not an
	// error.
	SearchDir string
	// Flags, if set, are bound over all other sources. Flag names match the
	// config keys.
	Flags *pflag.FlagSet
}

// Load resolves the configuration and validates it.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("patterns", defaults.Patterns)
	v.SetDefault("out", defaults.Out)
	v.SetDefault("file", defaults.File)
	v.SetDefault("quoting", defaults.Quoting)
	v.SetDefault("order", defaults.Order)
	v.SetDefault("check", defaults.Check)
	v.SetDefault("log-level", defaults.LogLevel)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		dir := opts.SearchDir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := v.BindPFlags(opts.Flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every enumerated setting holds a known value.
func (c Config) Validate() error {
	if _, err := c.QuotingMode(); err != nil {
		return err
	}
	if _, err := c.BlockOrder(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.File == "" {
		return errors.New("file must not be empty")
	}
	return nil
}

// QuotingMode returns the parsed Quoting setting.
func (c Config) QuotingMode() (commands.Quoting, error) {
	return commands.ParseQuoting(c.Quoting)
}

// BlockOrder returns the parsed Order setting.
func (c Config) BlockOrder() (commands.Order, error) {
	return commands.ParseOrder(c.Order)
}

// Level returns the parsed LogLevel setting.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log-level: %w", err)
	}
	return lvl, nil
}
