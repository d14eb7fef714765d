package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RedisAddr           string
	CombinationCacheTTL time.Duration

	RabbitMQURL          string
	NotificationExchange string

	SchedulerInterval  time.Duration
	SchedulerBatchSize int

	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "banking-terminal-backend")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("COMBINATION_CACHE_TTL", "30s")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("NOTIFICATION_EXCHANGE", "terminal.operations")
	viper.SetDefault("SCHEDULER_INTERVAL", "1m")
	viper.SetDefault("SCHEDULER_BATCH_SIZE", 50)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDurationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.CombinationCacheTTL = parseDurationOrDefault("COMBINATION_CACHE_TTL", 30*time.Second)

	cfg.RabbitMQURL = viper.GetString("RABBITMQ_URL")
	if cfg.RabbitMQURL == "" {
		log.Println("Warning: RABBITMQ_URL not set. Operation notifications will be disabled.")
	}
	cfg.NotificationExchange = viper.GetString("NOTIFICATION_EXCHANGE")

	cfg.SchedulerInterval = parseDurationOrDefault("SCHEDULER_INTERVAL", time.Minute)
	cfg.SchedulerBatchSize = viper.GetInt("SCHEDULER_BATCH_SIZE")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
