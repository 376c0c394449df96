// Package config handles configuration for the server: defaults, an optional
// JSON overlay, and command-line flags, applied in that order.
package config

import "time"

// Config holds runtime settings for the taskkeeper server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use
//     the test default in prod.
//   - TokenIssuer / TokenAudience: claims checked on every verification.
//   - AccessTokenValidityDuration: access token lifetime.
//   - UsersFilePath / TodosFilePath: JSON files backing the two stores.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	TokenIssuer                 string
	TokenAudience               string
	AccessTokenValidityDuration time.Duration
	UsersFilePath               string
	TodosFilePath               string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenIssuer = "taskkeeper"
	c.TokenAudience = "taskkeeper-clients"
	c.AccessTokenValidityDuration = 1 * time.Hour
	c.UsersFilePath = "users.json"
	c.TodosFilePath = "data.json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
