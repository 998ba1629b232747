package domain

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"negative level", func(c *Config) { c.Level = -1 }, true},
		{"level zero is valid", func(c *Config) { c.Level = 0 }, false},
		{"signature too high", func(c *Config) { c.Signature = 5 }, true},
		{"signature negative", func(c *Config) { c.Signature = -1 }, true},
		{"docstring too high", func(c *Config) { c.Docstring = 3 }, true},
		{"info too high", func(c *Config) { c.Info = 5 }, true},
		{"width too narrow", func(c *Config) { c.Width = 49 }, true},
		{"width too wide", func(c *Config) { c.Width = 501 }, true},
		{"width bounds", func(c *Config) { c.Width = 50 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Level != 999 || cfg.Signature != 1 || cfg.Docstring != 2 || cfg.Info != 2 || cfg.Width != 88 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Subpackages || cfg.Modules || cfg.Private || cfg.Dunders || cfg.Tests || cfg.Dense {
		t.Errorf("boolean knobs must default to off: %+v", cfg)
	}
}
