package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	DBDriver   string // postgres, mysql, sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBDSN      string // overrides the host/port/user fields when set

	CatalogURL string // remote catalog service; empty means local tables

	RedisAddr string

	KafkaBrokers string
	KafkaTopic   string

	SendgridAPIKey string
	EmailSender    string

	CartReminderHours int
	CartReminderCron  string

	VerifyRateLimit         int
	VerifyRateWindowSeconds int

	CertificateFallbackWorkload int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "learnhub"),
		DBDSN:      getEnv("DB_DSN", ""),

		CatalogURL: getEnv("CATALOG_URL", ""),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "learnhub.enrollments"),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@learnhub.local"),

		CartReminderHours: getEnvInt("CART_REMINDER_HOURS", 48),
		CartReminderCron:  getEnv("CART_REMINDER_CRON", "0 9 * * *"),

		VerifyRateLimit:         getEnvInt("VERIFY_RATE_LIMIT", 30),
		VerifyRateWindowSeconds: getEnvInt("VERIFY_RATE_WINDOW_SECONDS", 60),

		CertificateFallbackWorkload: getEnvInt("CERTIFICATE_FALLBACK_WORKLOAD", 20),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.SendgridAPIKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Emails will be printed to the console.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
