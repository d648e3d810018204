package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Env  string
	Port string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret        string
	JWTExpiryMinutes int
	JWTIssuer        string

	GeminiAPIKey     string
	GeminiModel      string
	AITimeoutSeconds int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SeedDemoData bool
}

// Load reads configuration from the environment. In local development a .env
// file is loaded first; missing .env is not an error.
func Load() *Config {
	env := GetEnv("APP_ENV", "local")
	if env == "local" {
		if err := godotenv.Load(); err != nil {
			logrus.WithError(err).Info("No .env file loaded")
		}
	}

	return &Config{
		Env:  env,
		Port: GetEnv("PORT", "3000"),

		DatabaseURL: GetEnv("DATABASE_URL", ""),

		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		JWTSecret:        GetEnv("JWT_SECRET", ""),
		JWTExpiryMinutes: GetEnvAsInt("JWT_EXPIRY_MINUTES", 60*24),
		JWTIssuer:        GetEnv("JWT_ISSUER", "moneypal"),

		GeminiAPIKey:     GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      GetEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITimeoutSeconds: GetEnvAsInt("AI_TIMEOUT_SECONDS", 30),

		SMTPHost:     GetEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     GetEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: GetEnv("SMTP_USERNAME", ""),
		SMTPPassword: GetEnv("SMTP_PASSWORD", ""),

		SeedDemoData: GetEnvAsBool("SEED_DEMO_DATA", false),
	}
}

// GetEnv returns the value of the environment variable or a default.
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt returns the environment variable parsed as int or a default.
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool returns the environment variable parsed as bool or a default.
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
