package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first when present; real environment
// variables win over file values.
//
// Recognized variables:
//
//	SERVER_ADDRESS          HTTP bind address (e.g. ":8080")
//	APP_ENV                 environment name
//	JWT_SECRET              token signing secret
//	TOKEN_TTL_MINUTES       bearer token validity, minutes
//	REQUEST_TIMEOUT_SECONDS per-request deadline, seconds
//	STORE_PROJECT_ID        content-store project id
//	STORE_DATASET           content-store dataset
//	STORE_API_VERSION       content-store API version date
//	STORE_TOKEN             content-store write token
//	STORE_BASE_URL          full store base URL override
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&config.EndpointAddrHTTP, "SERVER_ADDRESS")
	setString(&config.Environment, "APP_ENV")
	setString(&config.SecretKey, "JWT_SECRET")
	setString(&config.StoreProjectID, "STORE_PROJECT_ID")
	setString(&config.StoreDataset, "STORE_DATASET")
	setString(&config.StoreAPIVersion, "STORE_API_VERSION")
	setString(&config.StoreToken, "STORE_TOKEN")
	setString(&config.StoreBaseURL, "STORE_BASE_URL")

	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.TokenValidityDuration = time.Duration(n) * time.Minute
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.RequestTimeout = time.Duration(n) * time.Second
		}
	}
}
