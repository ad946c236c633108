// Package userconfig provides user-level configuration for threadview.
// This configuration is stored in ~/.threadview/config.yaml and contains
// connection settings like the backend URL and API token.
package userconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"
)

// Config represents the user-level threadview configuration
type Config struct {
	// Server is the thread backend base URL
	Server string `yaml:"server,omitempty"`
	// Token is the bearer token attached to every request
	Token string `yaml:"token,omitempty"`
	// CacheSize bounds the run cache (0 means the built-in default)
	CacheSize int `yaml:"cache_size,omitempty"`
	// Timeout is the per-request timeout (0 means the built-in default)
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Path returns the path to the config file
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".threadview", "config.yaml"), nil
}

// Load loads the user configuration from the config file. A missing file
// yields an empty configuration.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parsing user config: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration back to the config file.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	buf, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling user config: %w", err)
	}

	return atomic.WriteFile(path, bytes.NewReader(buf))
}
