package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	RateLimit       string // ulule/limiter formatted rate, e.g. "100-M"
	AllowedOrigins  []string
	DefaultPageSize int
	MaxPageSize     int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DEFAULT_PAGE_SIZE", 20)
	viper.SetDefault("MAX_PAGE_SIZE", 200)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		RateLimit:       viper.GetString("RATE_LIMIT"),
		DefaultPageSize: viper.GetInt("DEFAULT_PAGE_SIZE"),
		MaxPageSize:     viper.GetInt("MAX_PAGE_SIZE"),
	}

	for _, origin := range strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.DefaultPageSize < 1 {
		return nil, fmt.Errorf("DEFAULT_PAGE_SIZE must be positive, got %d", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, fmt.Errorf("MAX_PAGE_SIZE %d is smaller than DEFAULT_PAGE_SIZE %d", cfg.MaxPageSize, cfg.DefaultPageSize)
	}

	return cfg, nil
}
