package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	StripeAPIURL  string
	StripeAPIKey  string
	LogLevel      string
	ReportWorkers int
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		StripeAPIURL:  getEnv("STRIPE_API_URL", "https://api.stripe.com"),
		StripeAPIKey:  getEnv("STRIPE_SECRET_KEY", ""),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		ReportWorkers: getEnvInt("REPORT_WORKERS", 4),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASS", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", ""),
	}

	if cfg.StripeAPIKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.ReportWorkers < 1 {
		cfg.ReportWorkers = 1
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultVal
	}
	return parsed
}
