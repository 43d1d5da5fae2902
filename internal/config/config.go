package config

import (
	"os"
)

// Config holds all environment-backed configuration. Load after godotenv so a
// local .env file can supply values in development.
type Config struct {
	Port      string
	DBHost    string
	DBUser    string
	DBPass    string
	DBName    string
	DBPort    string
	RedisURL  string
	JWTSecret string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	AWSBucket    string
	BaseURL      string

	FirebaseCredentialsPath string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBUser:                  getEnv("DB_USER", "postgres"),
		DBPass:                  getEnv("DB_PASSWORD", ""),
		DBName:                  getEnv("DB_NAME", "luxride_admin"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		RedisURL:                getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		AWSRegion:               os.Getenv("AWS_REGION"),
		AWSAccessKey:            os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:            os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSBucket:               os.Getenv("AWS_S3_BUCKET"),
		BaseURL:                 getEnv("BASE_URL", "http://localhost:8080"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
