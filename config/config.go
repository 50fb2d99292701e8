// Package config loads application configuration from environment
// variables, read once at startup.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	// Base64-encoded PKCS#1 RSA private key used to sign access tokens.
	JWTSigningKey string `env:"JWT_SIGNING_KEY,required"`
	JWTIssuer     string `env:"JWT_ISSUER,required"`
	JWTAudience   string `env:"JWT_AUDIENCE,required"`

	AccessExpiryMin  int `env:"ACCESS_TOKEN_EXPIRY" envDefault:"30"`
	RefreshExpiryMin int `env:"REFRESH_TOKEN_EXPIRY" envDefault:"10080"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses environment variables and returns a Config. Missing
// required variables make it fail rather than defer the error to request
// time.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
