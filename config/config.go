package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	TRIPAY_API_KEY       string
	TRIPAY_PRIVATE_KEY   string
	TRIPAY_MERCHANT_CODE string
	TRIPAY_MODE          string
	TRIPAY_BASE_URL      string

	STRIPE_SECRET_KEY string

	RESEND_API_KEY string
	MAIL_FROM      string

	APP_URL string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	TRIPAY_API_KEY = mustEnv("TRIPAY_API_KEY")
	TRIPAY_PRIVATE_KEY = mustEnv("TRIPAY_PRIVATE_KEY")
	TRIPAY_MERCHANT_CODE = mustEnv("TRIPAY_MERCHANT_CODE")
	TRIPAY_MODE = getEnv("TRIPAY_MODE", "sandbox") // sandbox or production
	TRIPAY_BASE_URL = getEnv("TRIPAY_BASE_URL", "")

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")

	RESEND_API_KEY = getEnv("RESEND_API_KEY", "")
	MAIL_FROM = getEnv("MAIL_FROM", "ArfCoder <noreply@arfcoder.com>")

	APP_URL = getEnv("APP_URL", "http://localhost:5173")
}

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
