package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL          string
	RedisURL             string
	FrontendURL          string // Frontend base URL (reset links and list share QR codes)
	JWTSecret            string // Secret key for token signing
	TokenTTLHours        int    // Session token validity in hours
	ResetTokenTTLMinutes int    // Password-reset token validity in minutes
	SMTPHost             string
	SMTPPort             int
	SMTPUsername         string
	SMTPPassword         string
	MailFrom             string // Sender address for password-reset emails
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		TokenTTLHours:        getEnvInt("TOKEN_TTL_HOURS", 720),       // One month default
		ResetTokenTTLMinutes: getEnvInt("RESET_TOKEN_TTL_MINUTES", 15),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		MailFrom:             getEnv("MAIL_FROM", "no-reply@markethelper.app"),
	}
}

// Validate rejects configurations the server must not start with. Signing
// tokens with an empty secret is never acceptable, so absence fails fast
// instead of falling back to a default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.TokenTTLHours <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}
	if c.ResetTokenTTLMinutes <= 0 {
		return errors.New("RESET_TOKEN_TTL_MINUTES must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
