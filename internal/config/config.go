// Package config provides configuration management for the payoff analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "options-payoff/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Payoff   PayoffConfig   `mapstructure:"payoff"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PayoffConfig holds calculation defaults.
type PayoffConfig struct {
	DefaultUnderlying   float64 `mapstructure:"default_underlying"`
	DefaultRangePercent float64 `mapstructure:"default_range_percent"`
	DefaultNumPoints    int     `mapstructure:"default_num_points"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds terminal output configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	ChartWidth   int  `mapstructure:"chart_width"`
	ChartHeight  int  `mapstructure:"chart_height"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-payoff"
	}
	return filepath.Join(home, ".config", "options-payoff")
}

// DefaultDatabasePath returns the default SQLite database path.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultConfigDir(), "strategies.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// Config file not found, create template for the next run
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("payoff.default_underlying", 18000.0)
	v.SetDefault("payoff.default_range_percent", 30.0)
	v.SetDefault("payoff.default_num_points", 50)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.chart_width", 64)
	v.SetDefault("ui.chart_height", 16)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PAYOFF_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PAYOFF_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PAYOFF_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

const configTemplate = `# options-payoff configuration

[payoff]
# Defaults applied when a calculation request omits them.
default_underlying = 18000.0
default_range_percent = 30.0
default_num_points = 50

[server]
addr = ":8080"
read_timeout = "10s"
write_timeout = "10s"

[database]
# path = "~/.config/options-payoff/strategies.db"

[ui]
color_enabled = true
chart_width = 64
chart_height = 16

[logging]
level = "info"
file = true
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Payoff.DefaultUnderlying <= 0 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "payoff.default_underlying must be positive")
	}
	if c.Payoff.DefaultRangePercent <= 0 || c.Payoff.DefaultRangePercent > 100 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "payoff.default_range_percent must be in (0, 100]")
	}
	if c.Payoff.DefaultNumPoints < 2 || c.Payoff.DefaultNumPoints > 1000 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "payoff.default_num_points must be between 2 and 1000")
	}
	if c.Server.Addr == "" {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "server.addr must not be empty")
	}
	if c.UI.ChartWidth < 20 || c.UI.ChartHeight < 5 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "ui chart dimensions too small")
	}
	return nil
}
