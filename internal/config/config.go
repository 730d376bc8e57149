package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	TutorModeMock   = "mock"
	TutorModeOpenAI = "openai"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	LogLevel string
	Auth     AuthConfig
	Database DatabaseConfig
	HTTP     HTTPConfig
	Tutor    TutorConfig
}

// AuthConfig holds credential and session token settings
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SQLitePath string
}

// HTTPConfig holds HTTP API settings
type HTTPConfig struct {
	Addr    string
	GinMode string
}

// TutorConfig selects and configures the tutor backend
type TutorConfig struct {
	Mode   string
	APIKey string
	Model  string
	URL    string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	ttlHours, err := getEnvInt("TOKEN_TTL_HOURS", 720)
	if err != nil {
		return nil, err
	}
	cost, err := getEnvInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   time.Duration(ttlHours) * time.Hour,
			BcryptCost: cost,
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverPostgres),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			Name:       getEnv("DB_NAME", "lingotutor"),
			User:       getEnv("DB_USER", "lingotutor"),
			Password:   os.Getenv("DB_PASSWORD"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/lingotutor.db"),
		},
		HTTP: HTTPConfig{
			Addr:    getEnv("HTTP_ADDR", ":8000"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Tutor: TutorConfig{
			Mode:   getEnv("TUTOR_MODE", TutorModeMock),
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			URL:    getEnv("OPENAI_URL", "https://api.openai.com/v1/chat/completions"),
		},
	}

	// Validate required fields
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.Database.Driver)
	}
	switch cfg.Tutor.Mode {
	case TutorModeMock:
	case TutorModeOpenAI:
		if cfg.Tutor.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
	default:
		return nil, fmt.Errorf("TUTOR_MODE must be %q or %q, got %q", TutorModeMock, TutorModeOpenAI, cfg.Tutor.Mode)
	}

	return cfg, nil
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.Database.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", c.Database.SQLitePath)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}
