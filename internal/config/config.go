package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// WooCommerce (source store)
	WooBaseURL        string
	WooConsumerKey    string
	WooConsumerSecret string

	// Swell (target store)
	SwellStoreID   string
	SwellSecretKey string

	// Local paths
	DataDir  string
	ImageDir string

	// Run ledger
	DatabaseURL string

	// Kafka (optional outcome events)
	KafkaBrokers string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		WooBaseURL:        getEnv("WOO_BASE_URL", ""),
		WooConsumerKey:    getEnv("WOO_CONSUMER_KEY", ""),
		WooConsumerSecret: getEnv("WOO_CONSUMER_SECRET", ""),
		SwellStoreID:      getEnv("SWELL_STORE_ID", ""),
		SwellSecretKey:    getEnv("SWELL_SECRET_KEY", ""),
		DataDir:           getEnv("DATA_DIR", "./data"),
		ImageDir:          getEnv("IMAGE_DIR", ""),
		DatabaseURL:       getEnv("DATABASE_URL", "sqlite://migrate.db"),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", ""),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}, nil
}

// Validate checks that everything a migration needs is present before any
// network call is made.
func (c *Config) Validate() error {
	if c.WooBaseURL == "" {
		return fmt.Errorf("WOO_BASE_URL is required")
	}
	if c.WooConsumerKey == "" || c.WooConsumerSecret == "" {
		return fmt.Errorf("WOO_CONSUMER_KEY and WOO_CONSUMER_SECRET are required")
	}
	if c.SwellStoreID == "" || c.SwellSecretKey == "" {
		return fmt.Errorf("SWELL_STORE_ID and SWELL_SECRET_KEY are required")
	}
	if _, err := os.Stat(c.DataDir); err != nil {
		return fmt.Errorf("data directory %s: %w", c.DataDir, err)
	}
	return nil
}

// ValidateImageDir is only required by the image migration commands.
func (c *Config) ValidateImageDir() error {
	if c.ImageDir == "" {
		return fmt.Errorf("IMAGE_DIR is required")
	}
	if _, err := os.Stat(c.ImageDir); err != nil {
		return fmt.Errorf("image directory %s: %w", c.ImageDir, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
