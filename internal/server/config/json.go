package config

import (
	"encoding/json"
	"os"
	"time"

	"taskkeeper/internal/flagx"
	"taskkeeper/internal/timex"
)

// JsonConfig is the DTO used only for reading a JSON configuration file.
// It uses timex.Duration so the token lifetime can be written either as a
// string ("1h") or as integer nanoseconds. Unset fields keep the value the
// earlier configuration stages produced.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	SecretKey                   string         `json:"secret_key"`
	TokenIssuer                 string         `json:"token_issuer"`
	TokenAudience               string         `json:"token_audience"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	UsersFilePath               string         `json:"users_file_path"`
	TodosFilePath               string         `json:"todos_file_path"`
}

// parseJson overlays values from the JSON file named by the -c/-config flag.
// No flag means no file is loaded; an unreadable or invalid file panics,
// since running with half-applied configuration is worse than not starting.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
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

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenIssuer != "" {
		config.TokenIssuer = c.TokenIssuer
	}
	if c.TokenAudience != "" {
		config.TokenAudience = c.TokenAudience
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.UsersFilePath != "" {
		config.UsersFilePath = c.UsersFilePath
	}
	if c.TodosFilePath != "" {
		config.TodosFilePath = c.TodosFilePath
	}
}
