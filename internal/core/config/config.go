package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
)

type Config struct {
	Port          string
	DatabaseURL   string
	WebhookURL    string
	WebhookSecret string
	Env           string

	// TransferPolicy carries the two behaviors the product has not pinned
	// down. Defaults match the legacy system: destinations are not
	// re-validated and self-transfers are allowed.
	TransferPolicy domain.TransferPolicy
}

// LoadConfig reads .env and returns a Config struct.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on system env variables")
	}

	return &Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),
		Env:           getEnv("ENV", "development"),
		TransferPolicy: domain.TransferPolicy{
			ValidateDestination: getBoolEnv("TRANSFER_VALIDATE_DESTINATION", false),
			AllowSelfTransfer:   getBoolEnv("TRANSFER_ALLOW_SELF", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean env value, using default", "key", key, "value", value)
		return fallback
	}
	return b
}
