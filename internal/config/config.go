// Package config loads application configuration from
// ~/.taskmind/config.yaml, with environment variable overrides
// (TASKMIND_*). A missing config file is created with defaults on first
// load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration for the taskmind assistant.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Chat    ChatConfig    `mapstructure:"chat" yaml:"chat"`
}

// ServerConfig controls the HTTP front end.
type ServerConfig struct {
	// Addr is the listen address for the chat API.
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// StorageConfig controls the sqlite database location.
type StorageConfig struct {
	// DBPath is the path to the sqlite database file.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
	// File is an optional path for persistent logs; empty logs to stderr
	// only.
	File string `mapstructure:"file" yaml:"file"`
}

// ChatConfig controls the interactive REPL.
type ChatConfig struct {
	// UserID is the local user identity used by the `chat` command, where
	// no auth layer sits in front of the pipeline.
	UserID string `mapstructure:"user_id" yaml:"user_id"`
}

// Default returns the configuration used when no config file exists yet.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: "127.0.0.1:8765"},
		Storage: StorageConfig{DBPath: "~/.taskmind/taskmind.db"},
		Logging: LoggingConfig{Level: "info"},
		Chat:    ChatConfig{UserID: "local"},
	}
}

// Load reads configuration from the default location (~/.taskmind/config.yaml)
// and merges with environment variables.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return LoadFromPath(filepath.Join(homeDir, ".taskmind", "config.yaml"))
}

// LoadFromPath reads configuration from a specific file path. If the file
// doesn't exist, it is created with default values first.
func LoadFromPath(path string) (*Config, error) {
	path = expandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfigFile(path, Default()); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Example: TASKMIND_SERVER_ADDR, TASKMIND_LOGGING_LEVEL
	v.SetEnvPrefix("TASKMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Logging.File = expandPath(cfg.Logging.File)
	return &cfg, nil
}

func writeConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
