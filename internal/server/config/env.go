package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv populates Config fields from environment variables, loading a
// local .env file first if one exists. Unset variables leave the current
// value untouched.
//
// Recognized variables:
//
//	SERVER_ADDRESS   HTTP bind address (e.g., ":8080")
//	DATABASE_URL     PostgreSQL DSN
//	JWT_SECRET_KEY   JWT HMAC secret
//	S3_BUCKET        object storage bucket
//	S3_REGION        object storage region
//	S3_ACCESS_KEY    object storage access key
//	S3_SECRET_KEY    object storage secret key
//	S3_ENDPOINT      custom S3 base endpoint (MinIO etc.)
//	GEMINI_API_KEY   analysis provider API key
func parseEnv(config *Config) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("S3_BUCKET"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("S3_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_ACCESS_KEY"); ok {
		config.S3AccessKey = v
	}
	if v, ok := os.LookupEnv("S3_SECRET_KEY"); ok {
		config.S3SecretKey = v
	}
	if v, ok := os.LookupEnv("S3_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
	if v, ok := os.LookupEnv("GEMINI_API_KEY"); ok {
		config.GeminiAPIKey = v
	}
}
