package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Tokens
	JWTSecret    string
	JWTAlgorithm string
	JWTLifetime  time.Duration
}

// Load loads configuration from environment variables. It is called once at
// startup and the returned value is read-only afterwards.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "fintrack"),
		DBPassword: getEnv("DB_PASSWORD", "fintrack"),
		DBName:     getEnv("DB_NAME", "fintrack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Tokens
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTAlgorithm: getEnv("JWT_ALGORITHM", "HS256"),
	}

	// Token lifetime is configured in minutes
	minutesStr := getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "720")
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil || minutes <= 0 {
		log.Printf("Warning: invalid ACCESS_TOKEN_EXPIRE_MINUTES value '%s', falling back to 720\n", minutesStr)
		minutes = 720
	}
	config.JWTLifetime = time.Duration(minutes) * time.Minute

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
