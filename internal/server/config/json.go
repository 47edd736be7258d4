package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/apetrovs/walletgate/internal/flagx"
	"github.com/apetrovs/walletgate/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// Duration fields use timex.Duration so both "30m" and integer nanoseconds
// parse. Values are copied into the runtime Config after unmarshalling.
type JsonConfig struct {
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	IdentityBaseURL       string         `json:"identity_base_url"`
	IdentityAPIKey        string         `json:"identity_api_key"`
	IdentityTimeout       timex.Duration `json:"identity_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Absent flag means no file is
// loaded; an unreadable or invalid file panics, since running with a half
// applied config is worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.IdentityBaseURL != "" {
		config.IdentityBaseURL = c.IdentityBaseURL
	}
	if c.IdentityAPIKey != "" {
		config.IdentityAPIKey = c.IdentityAPIKey
	}
	if c.IdentityTimeout.Duration != 0 {
		config.IdentityTimeout = time.Duration(c.IdentityTimeout.Duration)
	}
}
