// Package config reads the jcgate configuration file.
package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/mumumusuc/libjoycon/pkg/bluez"
	"github.com/mumumusuc/libjoycon/pkg/scan"
)

// Config represents the contents of the configuration file.
type Config struct {
	Adapter  string        `yaml:"adapter"`
	Settings []string      `yaml:"settings"`
	Broker   string        `yaml:"broker"`
	Topic    string        `yaml:"topic"`
	Pattern  string        `yaml:"pattern"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Settings: bluez.DefaultSettings,
		Broker:   "tcp://localhost:1883",
		Topic:    "jcgate/status",
		Pattern:  scan.DefaultPattern,
		Timeout:  30 * time.Second,
	}
}

// Read will read the configuration file at the specified path. Missing
// values are set to their defaults. The default configuration is returned
// if the file does not exist.
func Read(path string) (*Config, error) {
	// prepare config
	cfg := Default()

	// read file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}

	// decode data
	var file Config
	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, err
	}

	// merge values
	if file.Adapter != "" {
		cfg.Adapter = file.Adapter
	}
	if len(file.Settings) > 0 {
		cfg.Settings = file.Settings
	}
	if file.Broker != "" {
		cfg.Broker = file.Broker
	}
	if file.Topic != "" {
		cfg.Topic = file.Topic
	}
	if file.Pattern != "" {
		cfg.Pattern = file.Pattern
	}
	if file.Timeout > 0 {
		cfg.Timeout = file.Timeout
	}

	return cfg, nil
}
