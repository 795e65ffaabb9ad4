// Package config holds the runtime configuration loaded from a YAML file.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config mirrors the YAML configuration file. The provider field selects the
// backend; everything nested under configuration and defaultRequestOptions is
// owned by that backend and passed through untouched.
type Config struct {
	Provider              string         `yaml:"provider"`
	APIKey                string         `yaml:"apiKey"`
	Configuration         map[string]any `yaml:"configuration"`
	DefaultRequestOptions map[string]any `yaml:"defaultRequestOptions"`
}

// Parse decodes YAML configuration text.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Provider = strings.TrimSpace(cfg.Provider)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return &cfg, nil
}

// Setting returns a string value from the configuration block, or "" when the
// key is absent or not a string.
func (c *Config) Setting(key string) string {
	if c == nil || c.Configuration == nil {
		return ""
	}
	if s, ok := c.Configuration[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// RequestFloat returns a numeric value from defaultRequestOptions.
func (c *Config) RequestFloat(key string) (float64, bool) {
	if c == nil || c.DefaultRequestOptions == nil {
		return 0, false
	}
	switch v := c.DefaultRequestOptions[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// RequestInt returns an integer value from defaultRequestOptions.
func (c *Config) RequestInt(key string) (int, bool) {
	if c == nil || c.DefaultRequestOptions == nil {
		return 0, false
	}
	switch v := c.DefaultRequestOptions[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}
