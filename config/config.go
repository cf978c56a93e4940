package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadEnv loads a .env file if one exists (local development) and wires
// viper to read from the environment with sensible defaults. On hosted
// deployments variables are set directly and the .env file is absent.
func LoadEnv() error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("FRONTEND_URL", "")
	viper.AutomaticEnv()

	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	if viper.GetString("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if viper.GetString("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables: warn but keep going.
	if viper.GetString("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}
	if viper.GetString("SMTP_HOST") == "" {
		log.Println("WARNING: SMTP_HOST not set - email notifications will not work")
	}
	if viper.GetString("SMTP_FROM") == "" {
		log.Println("WARNING: SMTP_FROM not set - email notifications will not work")
	}

	return nil
}

// GetEnv returns the value for key, or defaultValue when unset or empty.
func GetEnv(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
