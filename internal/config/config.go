package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenPort  string

	// AnthropicAPIKey enables the monitoring features. When empty the
	// scheduler never starts and /monitor and /brainstorm answer 503.
	AnthropicAPIKey string
	AnthropicModel  string

	// DefaultMonthlyLimit is the operation ceiling assigned to new users.
	DefaultMonthlyLimit int

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "topiq"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		ListenPort:  getenv("PORT", "8080"),

		AnthropicAPIKey: strings.TrimSpace(getenv("ANTHROPIC_API_KEY", "")),
		AnthropicModel:  getenv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		DefaultMonthlyLimit: getenvInt("DEFAULT_MONTHLY_LIMIT", 100),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "topiq"),
		DBUser:            getenv("DATABASE_USER", "topiq"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
	}
}

// MonitoringEnabled reports whether an external-provider credential is
// configured.
func (c Config) MonitoringEnabled() bool {
	return c.AnthropicAPIKey != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
