package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. PXPUB_API_KEY for api.key
const EnvPrefix = "PXPUB"

// Load loads the configuration from file and environment.
// Without an explicit path a missing config file is not an error, so
// credentials can come from the environment alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pxpub"))
		}

		// Check /etc
		v.AddConfigPath("/etc/pxpub/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults; key and secret are registered so env overrides are seen by Unmarshal
	v.SetDefault("api.key", "")
	v.SetDefault("api.secret", "")
	v.SetDefault("api.version", 1)
	v.SetDefault("api.base_url", "https://api.500px.com")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.user_agent", "")

	// Filter defaults
	v.SetDefault("filter.default_expression", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.trace_params", false)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Key == "" || cfg.API.Key == "your-consumer-key" {
		return fmt.Errorf("api.key must be set to a valid consumer key")
	}

	if cfg.API.Secret == "" || cfg.API.Secret == "your-consumer-secret" {
		return fmt.Errorf("api.secret must be set to a valid consumer secret")
	}

	if cfg.API.Version < 1 {
		return fmt.Errorf("invalid api.version: %d (must be 1 or greater)", cfg.API.Version)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("invalid api.timeout: %s", cfg.API.Timeout)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expr := range cfg.Filter.Presets {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	return nil
}
