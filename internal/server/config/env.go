package config

import (
	"os"
	"time"
)

// parseEnv overlays values from environment variables. Duration variables
// accept time.ParseDuration syntax ("30m", "10s"); invalid values are
// ignored in favor of whatever was already configured.
//
// Recognized variables:
//
//	DATABASE_DSN, SECRET_KEY, TOKEN_VALIDITY,
//	IDENTITY_BASE_URL, IDENTITY_API_KEY, IDENTITY_TIMEOUT
func parseEnv(config *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("IDENTITY_BASE_URL"); v != "" {
		config.IdentityBaseURL = v
	}
	if v := os.Getenv("IDENTITY_API_KEY"); v != "" {
		config.IdentityAPIKey = v
	}
	if v := os.Getenv("IDENTITY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.IdentityTimeout = d
		}
	}
}
