// Package config provides configuration loading and management for
// the fire safety platform.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete platform configuration
type Config struct {
	Vision   VisionConfig   `yaml:"vision"`
	Database DatabaseConfig `yaml:"database"`
	Branding BrandingConfig `yaml:"branding"`
}

// VisionConfig configures the floor-plan analysis model
type VisionConfig struct {
	// Provider selects the LLM provider ("anthropic" or "openai")
	Provider string `yaml:"provider"`
	// Endpoint overrides the provider API base URL (empty uses the
	// provider default)
	Endpoint string `yaml:"endpoint"`
	// Model is the vision-capable model identifier
	Model string `yaml:"model"`
	// MaxTokens caps the response size
	MaxTokens int `yaml:"max_tokens"`
	// Timeout is the maximum time to wait for an analysis response.
	// API keys come from the provider environment variables
	// (ANTHROPIC_API_KEY, OPENAI_API_KEY).
	Timeout time.Duration `yaml:"timeout"`
}

// DatabaseConfig configures the SQLite store
type DatabaseConfig struct {
	// Path is the database file path (":memory:" for ephemeral)
	Path string `yaml:"path"`
}

// BrandingConfig configures rendered document branding
type BrandingConfig struct {
	// CompanyName appears in title blocks and report covers
	CompanyName string `yaml:"company_name"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Vision: VisionConfig{
			Provider:  "anthropic",
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4096,
			Timeout:   3 * time.Minute,
		},
		Database: DatabaseConfig{
			Path: "firecore.db",
		},
		Branding: BrandingConfig{
			CompanyName: "BuildSafe",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Vision.Provider == "" {
		return fmt.Errorf("vision.provider is required")
	}
	if c.Vision.Model == "" {
		return fmt.Errorf("vision.model is required")
	}
	if c.Vision.MaxTokens <= 0 {
		return fmt.Errorf("vision.max_tokens must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Vision.Provider != "" {
		c.Vision.Provider = other.Vision.Provider
	}
	if other.Vision.Endpoint != "" {
		c.Vision.Endpoint = other.Vision.Endpoint
	}
	if other.Vision.Model != "" {
		c.Vision.Model = other.Vision.Model
	}
	if other.Vision.MaxTokens != 0 {
		c.Vision.MaxTokens = other.Vision.MaxTokens
	}
	if other.Vision.Timeout != 0 {
		c.Vision.Timeout = other.Vision.Timeout
	}

	if other.Database.Path != "" {
		c.Database.Path = other.Database.Path
	}

	if other.Branding.CompanyName != "" {
		c.Branding.CompanyName = other.Branding.CompanyName
	}
}
