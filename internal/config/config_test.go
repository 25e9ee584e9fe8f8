package config

import (
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvDriveAccessToken, "")
	t.Setenv(EnvWeatherAPIKey, "")
	t.Setenv(EnvDatabasePath, "")
	t.Setenv(EnvMemoryPath, "")
	t.Setenv(EnvDocsDir, "")

	cfg := FromEnv()

	if cfg.DriveAccessToken != "" {
		t.Errorf("expected empty drive token, got %q", cfg.DriveAccessToken)
	}
	if cfg.DatabasePath != DefaultDatabasePath {
		t.Errorf("expected default database path %q, got %q", DefaultDatabasePath, cfg.DatabasePath)
	}
	if cfg.MemoryPath != DefaultMemoryPath {
		t.Errorf("expected default memory path %q, got %q", DefaultMemoryPath, cfg.MemoryPath)
	}
	if cfg.DocsDir != DefaultDocsDir {
		t.Errorf("expected default docs dir %q, got %q", DefaultDocsDir, cfg.DocsDir)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvDriveAccessToken, "ya29.token")
	t.Setenv(EnvWeatherAPIKey, "owm-key")
	t.Setenv(EnvDatabasePath, "/tmp/events.db")
	t.Setenv(EnvMemoryPath, "/tmp/memory.json")
	t.Setenv(EnvDocsDir, "/tmp/docs")

	cfg := FromEnv()

	if cfg.DriveAccessToken != "ya29.token" {
		t.Errorf("unexpected drive token: %q", cfg.DriveAccessToken)
	}
	if cfg.WeatherAPIKey != "owm-key" {
		t.Errorf("unexpected weather key: %q", cfg.WeatherAPIKey)
	}
	if cfg.DatabasePath != "/tmp/events.db" {
		t.Errorf("unexpected database path: %q", cfg.DatabasePath)
	}
	if cfg.MemoryPath != "/tmp/memory.json" {
		t.Errorf("unexpected memory path: %q", cfg.MemoryPath)
	}
	if cfg.DocsDir != "/tmp/docs" {
		t.Errorf("unexpected docs dir: %q", cfg.DocsDir)
	}
}
