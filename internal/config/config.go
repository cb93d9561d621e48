package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yukikurage/design-tracker/internal/models"
)

// Store connection modes
const (
	StoreModePersistent = "persistent"
	StoreModeEphemeral  = "ephemeral"
)

// ErrStoreURIMissing is returned when no store URI is configured
var ErrStoreURIMissing = errors.New("STORE_URI (or MONGODB_URI) must be set")

type Config struct {
	StoreURI       string
	StoreDatabase  string
	StoreMode      string
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	LogFile        string
	CORSOrigins    []string
	DefaultMembers []string
}

// Load reads configuration from the environment, after loading .env when
// present. It fails when the store URI is absent.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		StoreURI:       getEnv("STORE_URI", os.Getenv("MONGODB_URI")),
		StoreDatabase:  getEnv("STORE_DATABASE", "design_tracker"),
		StoreMode:      getEnv("STORE_MODE", StoreModePersistent),
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		LogFile:        getEnv("LOG_FILE", ""),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
		DefaultMembers: models.DefaultMembers,
	}
	if members := models.ParseNames(getEnv("DEFAULT_MEMBERS", "")); len(members) > 0 {
		cfg.DefaultMembers = members
	}

	if cfg.StoreURI == "" {
		return nil, ErrStoreURIMissing
	}
	if cfg.StoreMode != StoreModePersistent && cfg.StoreMode != StoreModeEphemeral {
		return nil, fmt.Errorf("unknown STORE_MODE %q", cfg.StoreMode)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
