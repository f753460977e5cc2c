package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Overseerr
	OverseerrURL    string
	OverseerrAPIKey string

	// Enrichment
	RefreshBatchSize int // concurrent catalog fetches during refresh (default: 10)
	ListPageSize     int // page size for the upstream request listing (default: 1000)
	CacheWarmMinutes int // minutes between background cache warms, 0 disables (default: 30)

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/seerrdash.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("REFRESH_BATCH_SIZE", 10)
	viper.SetDefault("LIST_PAGE_SIZE", 1000)
	viper.SetDefault("CACHE_WARM_MINUTES", 30)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "seerrdash")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		OverseerrURL:    strings.TrimRight(viper.GetString("OVERSEERR_URL"), "/"),
		OverseerrAPIKey: viper.GetString("OVERSEERR_API_KEY"),

		RefreshBatchSize: viper.GetInt("REFRESH_BATCH_SIZE"),
		ListPageSize:     viper.GetInt("LIST_PAGE_SIZE"),
		CacheWarmMinutes: viper.GetInt("CACHE_WARM_MINUTES"),

		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile: filepath.Join(configDir, "seerrdash.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if config.OverseerrURL == "" {
		return nil, fmt.Errorf("OVERSEERR_URL is required")
	}
	if config.OverseerrAPIKey == "" {
		return nil, fmt.Errorf("OVERSEERR_API_KEY is required")
	}
	if config.RefreshBatchSize < 1 {
		config.RefreshBatchSize = 1
	}
	if config.ListPageSize < 1 {
		config.ListPageSize = 1
	}

	return config, nil
}
