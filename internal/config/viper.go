// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gift-ledger/internal/parsererror"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName names the config and data directories.
const AppName = "gift-ledger"

// EnvPrefix prefixes every environment override, e.g. GIFT_LEDGER_LOG_LEVEL.
const EnvPrefix = "GIFT_LEDGER"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Data struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"data" yaml:"data"`

	Display struct {
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	} `mapstructure:"display" yaml:"display"`
}

// Option customizes InitializeConfig.
type Option func(*loader)

type loader struct {
	configFile string
	flags      map[string]*pflag.Flag
}

// WithConfigFile reads path instead of searching the default locations.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.configFile = path }
}

// WithFlag binds a command-line flag to a config key. The flag only takes
// effect when it was set explicitly.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(l *loader) {
		if flag != nil {
			l.flags[key] = flag
		}
	}
}

// DefaultDataFile is where the ledger lives when data.file is not set.
func DefaultDataFile() string {
	return filepath.Join(xdg.DataHome, AppName, "gifts.csv")
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config file, then environment, then flags.
func InitializeConfig(opts ...Option) (*Config, error) {
	l := &loader{flags: make(map[string]*pflag.Flag)}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	setDefaults(v)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))
		v.AddConfigPath("." + AppName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist; the search locations are optional.
		if l.configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, flag := range l.flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("data.file", DefaultDataFile())

	v.SetDefault("display.currency_symbol", "$")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ConfigError{Key: "log.level", Value: config.Log.Level, Reason: "unknown log level"}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ConfigError{Key: "log.format", Value: config.Log.Format, Reason: "must be 'text' or 'json'"}
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return &parsererror.ConfigError{Key: "csv.delimiter", Value: config.CSV.Delimiter, Reason: "must be a single character"}
	}
	switch r, _ := utf8.DecodeRuneInString(config.CSV.Delimiter); r {
	case '"', '\r', '\n', utf8.RuneError:
		return &parsererror.ConfigError{Key: "csv.delimiter", Value: config.CSV.Delimiter, Reason: "cannot be a quote or line break"}
	}

	if strings.TrimSpace(config.Data.File) == "" {
		return &parsererror.ConfigError{Key: "data.file", Value: config.Data.File, Reason: "must not be empty"}
	}

	return nil
}

// Delimiter returns the CSV field separator as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
