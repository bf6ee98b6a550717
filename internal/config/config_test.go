package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetDefaults(t *testing.T) {
	c := &Config{}
	c.SetDefaults()
	if c.API.Endpoint != "https://api.softlayer.com/rest/v3.1" {
		t.Fatalf("unexpected default endpoint %s", c.API.Endpoint)
	}
	if c.API.TimeoutSeconds != 120 {
		t.Fatalf("expected timeout 120, got %d", c.API.TimeoutSeconds)
	}
	if c.Log.Level != "info" {
		t.Fatalf("expected info level")
	}
}

func TestLoadFromYAML(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.yaml")
	data := "api:\n  username: alice\n  api_key: secret\n  timeout_seconds: 30\nlog:\n  level: debug\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.Username != "alice" {
		t.Fatalf("unexpected username %s", cfg.API.Username)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Fatalf("unexpected timeout %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %s", cfg.Log.Level)
	}
	if cfg.API.Endpoint == "" {
		t.Fatalf("defaults should still apply to unset fields")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CDNCTL_API_USERNAME", "bob")
	t.Setenv("CDNCTL_API_KEY", "fromenv")
	t.Setenv("CDNCTL_API_ENDPOINT", "http://localhost:9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.Username != "bob" {
		t.Fatalf("unexpected username %s", cfg.API.Username)
	}
	if cfg.API.APIKey != "fromenv" {
		t.Fatalf("unexpected api key %s", cfg.API.APIKey)
	}
	if cfg.API.Endpoint != "http://localhost:9000" {
		t.Fatalf("unexpected endpoint %s", cfg.API.Endpoint)
	}
}

func TestValidate(t *testing.T) {
	c := &Config{}
	c.SetDefaults()
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error for missing credentials")
	}
	c.API.Username = "alice"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error for missing api key")
	}
	c.API.APIKey = "secret"
	if err := c.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
}
