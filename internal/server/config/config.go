// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the picvault server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Loaded once at
//     startup and never mutated afterwards.
//   - TokenValidityDuration: bearer token lifetime.
//   - PresignValidityDuration: TTL of presigned download URLs.
//   - S3AccessKey / S3SecretKey: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//     S3BaseEndpoint is empty for AWS proper; set it for MinIO-style setups.
//   - GeminiAPIKey: key for the image analysis provider.
type Config struct {
	EndpointAddr            string
	DatabaseDSN             string
	SecretKey               string
	TokenValidityDuration   time.Duration
	PresignValidityDuration time.Duration
	S3AccessKey             string
	S3SecretKey             string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
	GeminiAPIKey            string
}

// LoadDefaults populates Config with development defaults. Settings that
// have no safe default (DSN, secrets, bucket, API keys) stay empty and are
// checked by Validate.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.TokenValidityDuration = 24 * time.Hour
	c.PresignValidityDuration = 1 * time.Hour
	c.S3Region = "us-east-1"
}

// Validate reports whether required settings are present. A missing value is
// a startup-fatal error; it must never surface as a per-request failure.
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	if c.SecretKey == "" {
		return errors.New("token secret key is required")
	}
	if c.S3Bucket == "" {
		return errors.New("S3 bucket is required")
	}
	if c.GeminiAPIKey == "" {
		return errors.New("analysis API key is required")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment, and finally command-line
// flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
