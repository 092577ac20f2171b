package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	APP_ENV     string
	APP_URL     string
	API_URL     string
	CORS_ORIGIN string
	LOG_LEVEL   string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	STRIPE_PRODUCT_IDS    string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	REDIS_URL       string
	SCORE_CACHE_TTL time.Duration

	S3_ENDPOINT   string
	S3_REGION     string
	S3_BUCKET     string
	S3_ACCESS_KEY string
	S3_SECRET_KEY string
	S3_PUBLIC_URL string

	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_USERNAME string
	SMTP_PASSWORD string
	SMTP_FROM     string

	GEOIP_DB_PATH        string
	RESTRICTED_COUNTRIES string
	DEFAULT_COUNTRY      string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_ENV = getEnv("APP_ENV", "development")
	APP_URL = getEnv("APP_URL", "http://localhost:3000")
	API_URL = getEnv("API_URL", "http://localhost:"+PORT)
	CORS_ORIGIN = getEnv("CORS_ORIGIN", APP_URL)
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv("STRIPE_WEBHOOK_SECRET")
	STRIPE_PRODUCT_IDS = getEnv("STRIPE_PRODUCT_IDS", "")

	GOOGLE_CLIENT_ID = mustEnv("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	REDIS_URL = getEnv("REDIS_URL", "")
	SCORE_CACHE_TTL = getDuration("SCORE_CACHE_TTL", time.Hour)

	S3_ENDPOINT = getEnv("S3_ENDPOINT", "")
	S3_REGION = getEnv("S3_REGION", "auto")
	S3_BUCKET = mustEnv("S3_BUCKET")
	S3_ACCESS_KEY = mustEnv("S3_ACCESS_KEY")
	S3_SECRET_KEY = mustEnv("S3_SECRET_KEY")
	S3_PUBLIC_URL = getEnv("S3_PUBLIC_URL", "")

	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getInt("SMTP_PORT", 587)
	SMTP_USERNAME = getEnv("SMTP_USERNAME", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	SMTP_FROM = getEnv("SMTP_FROM", SMTP_USERNAME)

	GEOIP_DB_PATH = getEnv("GEOIP_DB_PATH", "")
	RESTRICTED_COUNTRIES = getEnv("RESTRICTED_COUNTRIES", "Syria")
	DEFAULT_COUNTRY = getEnv("DEFAULT_COUNTRY", "")
}

func IsProduction() bool { return APP_ENV == "production" }

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %q", key, v)
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %q", key, v)
	}
	return d
}
