package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. The category table is
// fixed and deliberately absent here.
type Config struct {
	DryRun   bool   `yaml:"dry_run"`
	Verbose  bool   `yaml:"verbose"`
	Output   string `yaml:"output"` // summary, table, json, yaml
	Color    bool   `yaml:"color"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	// ProtectedPaths are refused as targets on top of the system directories
	ProtectedPaths []string `yaml:"protected_paths"`
}

var (
	validOutputs   = []string{"summary", "table", "json", "yaml", "yml"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so partial files keep sensible values
	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !contains(validOutputs, strings.ToLower(c.Output)) {
		return fmt.Errorf("output must be one of %s, got %q", strings.Join(validOutputs, ", "), c.Output)
	}

	if c.LogLevel != "" && !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel)
	}

	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		return fmt.Errorf("log_file must be absolute: %s", c.LogFile)
	}

	for _, p := range c.ProtectedPaths {
		if !filepath.IsAbs(p) {
			return fmt.Errorf("protected_paths entries must be absolute: %s", p)
		}
	}

	return nil
}

// EffectiveLogLevel returns the level to log at, honoring Verbose
func (c *Config) EffectiveLogLevel() string {
	if c.Verbose {
		return "debug"
	}
	if c.LogLevel == "" {
		return "warn"
	}
	return strings.ToLower(c.LogLevel)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "folder-organizer")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create default config
		defaultConfig := GetDefault()
		if err := Save(defaultConfig, configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
