package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-e string   environment name ("development", "production", ...)
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-p string   content-store project id
//	-d string   content-store dataset
//	-k string   content-store write token
//
// Flags win over environment variables, which win over defaults.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.StoreProjectID, "p", config.StoreProjectID, "content-store project id")
	fs.StringVar(&config.StoreDataset, "d", config.StoreDataset, "content-store dataset")
	fs.StringVar(&config.StoreToken, "k", config.StoreToken, "content-store write token")

	if err := fs.Parse(os.Args[1:]); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
