package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigRelPath = ".cdnctl/config.yaml"

type APIConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Username       string `yaml:"username"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
}

// Load loads YAML config, then applies env overrides.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}
	cfg.SetDefaults()

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		configPath = filepath.Join(home, defaultConfigRelPath)
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func (c *Config) SetDefaults() {
	if c.API.Endpoint == "" {
		c.API.Endpoint = "https://api.softlayer.com/rest/v3.1"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 120
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate enforces the credentials every remote call needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.Endpoint) == "" {
		return errors.New("api.endpoint cannot be empty")
	}
	if strings.TrimSpace(c.API.Username) == "" {
		return errors.New("api.username cannot be empty")
	}
	if strings.TrimSpace(c.API.APIKey) == "" {
		return errors.New("api.api_key cannot be empty")
	}
	return nil
}

func applyEnvOverrides(c *Config) {
	setString(&c.API.Endpoint, "CDNCTL_API_ENDPOINT")
	setString(&c.API.Username, "CDNCTL_API_USERNAME")
	setString(&c.API.APIKey, "CDNCTL_API_KEY")
	setInt(&c.API.TimeoutSeconds, "CDNCTL_API_TIMEOUT_SECONDS")
	setString(&c.Log.Level, "CDNCTL_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
