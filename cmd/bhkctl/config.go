package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the bhkctl configuration.
type Config struct {
	// Resource is the instrument resource string.
	Resource string `yaml:"resource"`

	// ConnectTimeout bounds opening the connection.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// ReadTimeout bounds waiting for a query response.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout bounds sending a command.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// TraceFile, when set, records the wire conversation in CBOR.
	TraceFile string `yaml:"trace_file"`

	// Limits are applied to the supply on open when set.
	Limits Limits `yaml:"limits"`
}

// Limits holds optional soft limits written to the instrument on open.
type Limits struct {
	// MaxVoltage in volts.
	MaxVoltage *float64 `yaml:"max_voltage"`

	// MaxCurrent in amps.
	MaxCurrent *float64 `yaml:"max_current"`
}

// defaultConfig returns the configuration used when no file is given.
func defaultConfig() Config {
	return Config{
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	}
}

// loadConfig reads a YAML configuration file, applying defaults for
// unset fields.
func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.ConnectTimeout <= 0 {
		return Config{}, fmt.Errorf("%s: connect_timeout must be positive", path)
	}
	if cfg.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("%s: read_timeout must be positive", path)
	}
	if cfg.WriteTimeout <= 0 {
		return Config{}, fmt.Errorf("%s: write_timeout must be positive", path)
	}
	return cfg, nil
}
