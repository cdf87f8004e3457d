package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/livefir/html2rsx/internal/validation"
)

const (
	// ConfigFileName is the name of the config file
	ConfigFileName = "config.yaml"

	// HistoryFileName is the default name of the history database
	HistoryFileName = "history.db"

	// DefaultConfigDir is the default directory for html2rsx configuration
	// This will be ~/.config/html2rsx/ on Unix systems
	DefaultConfigDir = ".config/html2rsx"

	// EnvConfigPath overrides the config file location
	EnvConfigPath = "HTML2RSX_CONFIG"
)

// Config represents the html2rsx configuration
type Config struct {
	// Minify collapses insignificant whitespace before converting
	Minify bool `yaml:"minify"`

	// MaxBuffer caps the bytes buffered for a single token, 0 for no limit
	MaxBuffer int `yaml:"max_buffer" validate:"gte=0"`

	// HistoryEnabled records every conversion in the history database
	HistoryEnabled bool `yaml:"history_enabled"`

	// HistoryPath is the SQLite file; empty means next to the config file
	HistoryPath string `yaml:"history_path,omitempty"`

	// HistoryLimit is the number of entries `history list` shows by default
	HistoryLimit int `yaml:"history_limit" validate:"gte=1,lte=1000"`

	// ListenAddr is the playground server address
	ListenAddr string `yaml:"listen_addr" validate:"required,hostname_port"`

	// Version tracks the config file version for future migrations
	Version string `yaml:"version,omitempty"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Minify:         false,
		MaxBuffer:      0,
		HistoryEnabled: true,
		HistoryLimit:   20,
		ListenAddr:     "localhost:8080",
		Version:        "1.0",
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// GetConfigDir returns the directory containing the config file
func GetConfigDir() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return filepath.Dir(p), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}

// LoadConfig loads the configuration from the config file
// If the file doesn't exist, returns a default config
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the configuration from path, falling back to
// defaults when the file doesn't exist
func LoadConfigFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unset fields keep their defaults
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the config file
func SaveConfig(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveConfigTo(config, configPath)
}

// SaveConfigTo writes the configuration to path, creating its directory
func SaveConfigTo(config *Config, configPath string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
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

// ResolveHistoryPath returns the configured history path or the default
// one inside the config directory
func (c *Config) ResolveHistoryPath() (string, error) {
	if c.HistoryPath != "" {
		return c.HistoryPath, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, HistoryFileName), nil
}

// Keys lists the settable keys in display order
func Keys() []string {
	return []string{"minify", "max_buffer", "history_enabled", "history_path", "history_limit", "listen_addr"}
}

// Get returns the string form of a config value
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "minify":
		return strconv.FormatBool(c.Minify), nil
	case "max_buffer":
		return strconv.Itoa(c.MaxBuffer), nil
	case "history_enabled":
		return strconv.FormatBool(c.HistoryEnabled), nil
	case "history_path":
		return c.HistoryPath, nil
	case "history_limit":
		return strconv.Itoa(c.HistoryLimit), nil
	case "listen_addr":
		return c.ListenAddr, nil
	default:
		return "", fmt.Errorf("unknown key: %s (expected: %s)", key, strings.Join(Keys(), ", "))
	}
}

// Set parses value and assigns it to key. The result is validated.
func (c *Config) Set(key, value string) error {
	next := *c
	var err error
	switch key {
	case "minify":
		next.Minify, err = strconv.ParseBool(value)
	case "max_buffer":
		next.MaxBuffer, err = strconv.Atoi(value)
	case "history_enabled":
		next.HistoryEnabled, err = strconv.ParseBool(value)
	case "history_path":
		next.HistoryPath = value
	case "history_limit":
		next.HistoryLimit, err = strconv.Atoi(value)
	case "listen_addr":
		next.ListenAddr = value
	default:
		return fmt.Errorf("unknown key: %s (expected: %s)", key, strings.Join(Keys(), ", "))
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.Struct(validation.New("yaml"), c)
}
