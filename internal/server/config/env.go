package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with pointer fields so that only variables
// actually present in the environment override earlier layers.
type envConfig struct {
	EndpointAddr                *string        `env:"ADDRESS"`
	DatabaseDSN                 *string        `env:"DATABASE_DSN"`
	SecretKey                   *string        `env:"JWT_SECRET"`
	AccessTokenValidityDuration *time.Duration `env:"ACCESS_TOKEN_VALIDITY"`
}

// parseEnv overlays configuration values from environment variables onto the
// provided Config. Unset variables leave the existing values untouched.
func parseEnv(config *Config) {
	c := &envConfig{}
	if err := env.Parse(c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *c.AccessTokenValidityDuration
	}
}
