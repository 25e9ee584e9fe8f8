// Package config resolves the process configuration once at startup.
// Operation logic never reads the environment directly; everything it
// needs arrives through this struct.
package config

import (
	"os"
)

// Environment variable names recognized by FromEnv.
const (
	EnvDriveAccessToken = "GOOGLE_DRIVE_ACCESS_TOKEN"
	EnvWeatherAPIKey    = "OPENWEATHER_API_KEY"
	EnvDatabasePath     = "EVENTKIT_DB_PATH"
	EnvMemoryPath       = "EVENTKIT_MEMORY_PATH"
	EnvDocsDir          = "EVENTKIT_DOCS_DIR"
)

// Default paths for the local stores.
const (
	DefaultDatabasePath = "event_planning.db"
	DefaultMemoryPath   = "conversation_memory.json"
	DefaultDocsDir      = "event_documents"
)

// Config holds the credentials and paths the tool collaborators need.
type Config struct {
	// DriveAccessToken is the bearer token for Google Drive API calls.
	// An empty value means Drive tools report a missing-credential error.
	DriveAccessToken string

	// WeatherAPIKey is the OpenWeather API key. An empty value means the
	// weather tool reports a configuration error without any network call.
	WeatherAPIKey string

	// DatabasePath is the SQLite database file for participant storage.
	DatabasePath string

	// MemoryPath is the JSON file backing conversation memory.
	MemoryPath string

	// DocsDir is the directory the filesystem tool is confined to.
	DocsDir string
}

// FromEnv builds a Config from the environment, applying defaults for
// the local store paths.
func FromEnv() Config {
	return Config{
		DriveAccessToken: os.Getenv(EnvDriveAccessToken),
		WeatherAPIKey:    os.Getenv(EnvWeatherAPIKey),
		DatabasePath:     getEnvOrDefault(EnvDatabasePath, DefaultDatabasePath),
		MemoryPath:       getEnvOrDefault(EnvMemoryPath, DefaultMemoryPath),
		DocsDir:          getEnvOrDefault(EnvDocsDir, DefaultDocsDir),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
