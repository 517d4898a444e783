package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	MongoDB MongoConfig
	Storage StorageConfig
	Auth    AuthConfig
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis Configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Application status transitions: forward-only when true
	StrictStatusFlow bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type StorageConfig struct {
	Provider        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	RootFolder      string
	Endpoint        string
}

type AuthConfig struct {
	SignInSecret string
	ResetSecret  string
	BcryptCost   int
	TokenTTLHrs  int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		MongoDB: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "careers_cms"),
		},
		Storage: StorageConfig{
			Provider:        getEnv("STORAGE_PROVIDER", "aws"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			Bucket:          getEnv("STORAGE_BUCKET", ""),
			RootFolder:      getEnv("STORAGE_ROOT_FOLDER", "careers-cms"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
		},
		Auth: AuthConfig{
			SignInSecret: getEnv("SIGN_IN_SECRET", ""),
			ResetSecret:  getEnv("RESET_SECRET", ""),
			BcryptCost:   getEnvInt("BCRYPT_COST", 10),
			TokenTTLHrs:  getEnvInt("TOKEN_TTL_HOURS", 12),
		},
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Status transitions stay permissive unless explicitly tightened
		StrictStatusFlow: getEnvBool("STRICT_STATUS_FLOW", false),
	}

	if cfg.Auth.SignInSecret == "" {
		log.Println("WARNING: SIGN_IN_SECRET is missing. Issued tokens will not survive restarts safely.")
	}
	if cfg.Storage.Bucket == "" {
		log.Println("WARNING: STORAGE_BUCKET is missing. File uploads will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
