// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	AdapterPostgres = "postgres"
	AdapterSQLite   = "sqlite"
)

// ErrMissingSecretKey is returned when no signing secret was configured.
// There is deliberately no default: a guessable secret would let anyone
// mint valid access tokens.
var ErrMissingSecretKey = errors.New("secret key is not configured")

// Config holds runtime settings for the opennote server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DatabaseAdapter: "postgres" or "sqlite".
//   - DatabaseDSN: DSN for the chosen adapter.
//   - SecretKey: HMAC secret for signing access tokens. Required.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
type Config struct {
	EndpointAddr                 string
	DatabaseAdapter              string
	DatabaseDSN                  string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
}

// LoadDefaults populates Config with development defaults. The secret key
// stays empty on purpose.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseAdapter = AdapterSQLite
	c.DatabaseDSN = "file:opennote.db?cache=shared"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
}

func (c *Config) validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if c.DatabaseAdapter != AdapterPostgres && c.DatabaseAdapter != AdapterSQLite {
		return fmt.Errorf("unknown database adapter %q", c.DatabaseAdapter)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables and finally
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
