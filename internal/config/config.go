package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	DB  DBConfig  `yaml:"db"`
	Log LogConfig `yaml:"log"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Env vars win over the file.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 15 * time.Second,
		},
		DB: DBConfig{
			Path: "taskdeck.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("TASKDECK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if base := os.Getenv("TASKDECK_API_BASE"); base != "" {
		cfg.API.BaseURL = base
	}
	if timeoutStr := os.Getenv("TASKDECK_API_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKDECK_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = timeout
	}
	if dbPath := os.Getenv("TASKDECK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TASKDECK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
