// Package config handles configuration for the server component,
// including defaults, environment overlay, and command-line flags.
package config

import (
	"errors"
	"time"
)

// EnvDevelopment marks a local development deployment; it is the only
// environment allowed to run on the insecure fallback signing secret.
const EnvDevelopment = "development"

// devFallbackSecret is the insecure development-only signing secret.
// Validate refuses to let it survive into any other environment.
const devFallbackSecret = "fallback-secret-key"

// Config holds runtime settings for the layout API server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - Environment: deployment environment name ("development", "production", ...).
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: bearer token lifetime.
//   - RequestTimeout: per-request deadline applied by the HTTP layer and
//     propagated into content-store calls.
//   - StoreProjectID / StoreDataset / StoreAPIVersion / StoreToken: external
//     content-store coordinates and write credential.
//   - StoreBaseURL: optional full base URL overriding the one derived from
//     the project id (used for local store emulators).
type Config struct {
	EndpointAddrHTTP      string
	Environment           string
	SecretKey             string
	TokenValidityDuration time.Duration
	RequestTimeout        time.Duration
	StoreProjectID        string
	StoreDataset          string
	StoreAPIVersion       string
	StoreToken            string
	StoreBaseURL          string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.Environment = EnvDevelopment
	c.TokenValidityDuration = 1 * time.Hour
	c.RequestTimeout = 15 * time.Second
	c.StoreDataset = "production"
	c.StoreAPIVersion = "2023-10-01"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file) and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate checks that the configuration is safe to run with. In development
// a missing signing secret falls back to the well-known insecure constant;
// anywhere else a missing secret or store token is a startup failure.
func (c *Config) Validate() error {
	if c.Environment != EnvDevelopment {
		if c.SecretKey == "" || c.SecretKey == devFallbackSecret {
			return errors.New("JWT signing secret is not configured; refusing to start outside development")
		}
		if c.StoreToken == "" {
			return errors.New("content-store write token is not configured; refusing to start outside development")
		}
	}
	if c.SecretKey == "" {
		c.SecretKey = devFallbackSecret
	}
	return nil
}

// UsesFallbackSecret reports whether the insecure development secret is in
// effect, so startup can warn loudly.
func (c *Config) UsesFallbackSecret() bool {
	return c.SecretKey == devFallbackSecret
}
