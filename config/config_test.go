package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromFileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("auth:\n  jwt_secret: test-secret-key-0123456789\nserver:\n  port: 9090\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 720*time.Hour {
		t.Errorf("expected default token_ttl 720h, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Storage.Driver != "local" {
		t.Errorf("expected default storage driver local, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.MaxThumbnailSize != 2<<20 {
		t.Errorf("expected 2MB thumbnail limit, got %d", cfg.Storage.MaxThumbnailSize)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("auth:\n  jwt_secret: test-secret-key-0123456789\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FLIGHT_SERVER_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Auth:    AuthConfig{JWTSecret: "0123456789abcdef"},
			Storage: StorageConfig{Driver: "local"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	short := base()
	short.Auth.JWTSecret = "short"
	if short.Validate() == nil {
		t.Error("expected short secret to be rejected")
	}

	badPort := base()
	badPort.Server.Port = 70000
	if badPort.Validate() == nil {
		t.Error("expected out of range port to be rejected")
	}

	badDriver := base()
	badDriver.Storage.Driver = "ftp"
	if badDriver.Validate() == nil {
		t.Error("expected unknown storage driver to be rejected")
	}
}
