package config

import (
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // APP_TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Session
	SessionSecret     string
	SessionTTL        time.Duration
	SessionCookieName string
	CookieSecure      bool

	// Location used to decide which calendar day "today" is.
	Location *time.Location
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finance"),
		DBPassword: getEnv("DB_PASSWORD", "finance"),
		DBName:     getEnv("DB_NAME", "finance"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "finance.db"),

		SessionSecret:     getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
		SessionCookieName: getEnv("SESSION_COOKIE", "FINANCE_SESSION"),
	}

	ttlStr := getEnv("SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 24h\n", ttlStr)
		ttl = 24 * time.Hour
	}
	config.SessionTTL = ttl

	secureStr := getEnv("COOKIE_SECURE", "false")
	secure, err := strconv.ParseBool(secureStr)
	if err != nil {
		log.Printf("Warning: invalid COOKIE_SECURE value '%s', falling back to false\n", secureStr)
	}
	config.CookieSecure = secure

	tzName := getEnv("APP_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: unknown APP_TIMEZONE '%s', falling back to UTC\n", tzName)
		loc = time.UTC
	}
	config.Location = loc

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Now returns the current time in the configured location.
func (c *Config) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
