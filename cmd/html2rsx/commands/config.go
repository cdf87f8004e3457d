package commands

import (
	"fmt"
	"strings"

	"github.com/livefir/html2rsx/internal/config"
)

// Config handles configuration management commands
func Config(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("command required: get, set, list, path")
	}

	command := args[0]

	switch command {
	case "get":
		return configGet(args[1:])
	case "set":
		return configSet(args[1:])
	case "list":
		return configList(args[1:])
	case "path":
		return configPath(args[1:])
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// configGet retrieves a configuration value
func configGet(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("key required: html2rsx config get <key>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	value, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	if value == "" {
		value = "(none)"
	}
	fmt.Fprintln(stdout, value)
	return nil
}

// configSet sets a configuration value
func configSet(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("key and value required: html2rsx config set <key> <value>")
	}

	key := args[0]
	value := strings.Join(args[1:], " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(stdout, "✅ Set %s to: %s\n", key, value)
	return nil
}

// configList lists all configuration values
func configList(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Configuration:")
	fmt.Fprintln(stdout)

	for _, key := range config.Keys() {
		value, _ := cfg.Get(key)
		if value == "" {
			value = "(none)"
		}
		fmt.Fprintf(stdout, "%-16s %s\n", key+":", value)
	}
	fmt.Fprintln(stdout)

	configPath, _ := config.GetConfigPath()
	fmt.Fprintf(stdout, "Config file: %s\n", configPath)

	return nil
}

// configPath prints the config file location
func configPath(args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}
