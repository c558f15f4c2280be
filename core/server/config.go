package server

import (
	"strings"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// RunTimeoutSeconds bounds a single reconciliation started over HTTP.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" default:"300"`
}

// Addr returns the listen address for fiber.
func (c Config) Addr() string {
	port := strings.TrimPrefix(c.Port, ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// RunTimeout returns the reconciliation timeout, defaulting to five minutes.
func (c Config) RunTimeout() time.Duration {
	if c.RunTimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}
