package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"campushub/internal/cache"
	"campushub/internal/database"
	"campushub/internal/external"
	"campushub/internal/messaging"
)

// Config holds the full application configuration
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	Auth AuthConfig

	Database      database.Config
	NATS          messaging.Config
	Cache         cache.Config
	Elasticsearch ElasticsearchConfig
	Mailer        external.MailerConfig
}

// AuthConfig configures JWT issuing and password hashing
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	BcryptCost  int
}

// Load reads configuration from environment variables.
// A .env file is loaded first when present so local runs need no exported vars.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "campushub-dev-secret"),
			TokenExpiry: time.Duration(getEnvInt("TOKEN_EXPIRY_HOURS", 24)) * time.Hour,
			BcryptCost:  getEnvInt("BCRYPT_COST", 10),
		},

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "campushub"),
			Password:           getEnv("DB_PASSWORD", "campushub"),
			DBName:             getEnv("DB_NAME", "campushub"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "campushub"),
			ClientID:  getEnv("NATS_CLIENT_ID", "campushub-api"),
		},

		Cache: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("VALKEY_TTL_SEC", 60)) * time.Second,
		},

		Elasticsearch: ElasticsearchConfig{
			URL:        getEnv("ELASTICSEARCH_URL", ""),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "events"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},

		Mailer: external.MailerConfig{
			BaseURL: getEnv("MAIL_GATEWAY_URL", ""),
			APIKey:  getEnv("MAIL_GATEWAY_API_KEY", ""),
			Sender:  getEnv("MAIL_SENDER", "noreply@campushub.edu"),
			Timeout: time.Duration(getEnvInt("MAIL_TIMEOUT_SEC", 15)) * time.Second,
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
