package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jobmeet/jobmeet/internal/errors"
)

// Config is the client configuration, read from ~/.jobmeet/config.yaml with
// environment-variable overrides on top. Defaults suit local development.
type Config struct {
	// ServerURL is the base URL of the JobMeet backend
	ServerURL string `yaml:"server_url" env:"JOBMEET_SERVER_URL"`

	// GoogleClientID is the OAuth client ID used for Google sign-in
	GoogleClientID string `yaml:"google_client_id" env:"JOBMEET_GOOGLE_CLIENT_ID"`

	// Theme is the UI color theme: "dark" or "light"
	Theme string `yaml:"theme" env:"JOBMEET_THEME"`

	// LogLevel is the minimum log level: debug, info, warn, error
	LogLevel string `yaml:"log_level" env:"JOBMEET_LOG_LEVEL"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		ServerURL: "http://localhost:8000",
		Theme:     "dark",
		LogLevel:  "warn",
	}
}

// Path returns the default config file location
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".jobmeet", "config.yaml"), nil
}

// Load reads the config file at the default path and applies environment
// overrides. A missing file is not an error; defaults apply.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFileStrict is LoadFile except a missing file is an error. Used when
// the path was given explicitly rather than defaulted.
func LoadFileStrict(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), errors.New(errors.ErrCodeConfigNotFound, fmt.Sprintf("config file not found: %s", path)).
			WithSuggestion("Check the --config path")
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path and applies environment overrides
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file yet; defaults plus env
	case err != nil:
		// Exists but unreadable (permissions, path is a directory)
		return cfg, errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("read config file: %s", path), err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.NewConfigInvalidError(path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeConfigInvalid, "parse environment overrides", err)
	}

	return cfg, nil
}

// SaveFile writes the config to path, creating the parent directory
// if needed. Used to persist the theme toggle from settings.
func SaveFile(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Save writes the config to the default path
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(cfg, path)
}
