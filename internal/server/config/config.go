// Package config handles configuration for the FEAS server,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the FEAS identity server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of interactively issued tokens.
//   - DefaultTokenTTL: fallback lifetime applied when no TTL is supplied.
//   - BcryptCost: bcrypt cost factor for password hashing.
//   - DevAutoProvision: when true, login auto-creates unknown users
//     without password verification. Development only, never production.
//   - CORSAllowedOrigin: value for Access-Control-Allow-Origin.
type Config struct {
	EndpointAddr                string        `env:"FEAS_ADDR"`
	DatabaseDSN                 string        `env:"FEAS_DATABASE_DSN"`
	SecretKey                   string        `env:"FEAS_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"FEAS_ACCESS_TOKEN_TTL"`
	DefaultTokenTTL             time.Duration `env:"FEAS_DEFAULT_TOKEN_TTL"`
	BcryptCost                  int           `env:"FEAS_BCRYPT_COST"`
	DevAutoProvision            bool          `env:"FEAS_DEV_AUTO_PROVISION"`
	CORSAllowedOrigin           string        `env:"FEAS_CORS_ORIGIN"`
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.DatabaseDSN = ""
	c.SecretKey = "your-secret-key-here-change-in-production"
	c.AccessTokenValidityDuration = 30 * time.Minute
	c.DefaultTokenTTL = 15 * time.Minute
	c.BcryptCost = bcrypt.DefaultCost
	c.DevAutoProvision = false
	c.CORSAllowedOrigin = "*"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from environment variables, an optional JSON file, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
