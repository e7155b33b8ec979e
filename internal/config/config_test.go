package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "options-payoff/internal/errors"
)

func validConfig() *Config {
	return &Config{
		Payoff: PayoffConfig{
			DefaultUnderlying:   18000,
			DefaultRangePercent: 30,
			DefaultNumPoints:    50,
		},
		Server: ServerConfig{Addr: ":8080"},
		UI:     UIConfig{ChartWidth: 64, ChartHeight: 16},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsWithSentinel(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero underlying", func(c *Config) { c.Payoff.DefaultUnderlying = 0 }},
		{"range percent above 100", func(c *Config) { c.Payoff.DefaultRangePercent = 150 }},
		{"single point sweep", func(c *Config) { c.Payoff.DefaultNumPoints = 1 }},
		{"empty server addr", func(c *Config) { c.Server.Addr = "" }},
		{"tiny chart", func(c *Config) { c.UI.ChartWidth = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !apperrors.Is(err, apperrors.ErrConfigInvalid) {
				t.Errorf("err = %v, want ErrConfigInvalid in chain", err)
			}
		})
	}
}

func TestLoadCreatesTemplateAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Payoff.DefaultUnderlying != 18000 || cfg.Payoff.DefaultNumPoints != 50 {
		t.Errorf("payoff defaults = %+v", cfg.Payoff)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template config not created: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PAYOFF_SERVER_ADDR", ":9999")
	t.Setenv("PAYOFF_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("server addr = %q, want env override", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want env override", cfg.Logging.Level)
	}
}
