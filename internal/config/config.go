package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken       string
	Database       DatabaseConfig
	ContentFile    string
	SeedFile       string
	MigrationsPath string
	LogLevel       string
	StateTTL       time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordtrainer"),
			User:     getEnv("DB_USER", "wordtrainer"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		ContentFile:    os.Getenv("CONTENT_FILE"),
		SeedFile:       os.Getenv("SEED_FILE"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	ttl, err := time.ParseDuration(getEnv("STATE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("STATE_TTL is invalid: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("STATE_TTL must be positive")
	}
	cfg.StateTTL = ttl

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings, for commands that never talk to Telegram
func LoadDatabase() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordtrainer"),
			User:     getEnv("DB_USER", "wordtrainer"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SeedFile:       os.Getenv("SEED_FILE"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
