package config

import (
	"time"
)

// DefaultSessionIdleTimeout is how long an untouched storefront session lives
const DefaultSessionIdleTimeout = 30 * time.Minute

// ServerConfig holds storefront server configuration
type ServerConfig struct {
	Port string
	// GlitchDelay is how long logins of the performance glitch account stall.
	GlitchDelay time.Duration
	// SessionIdleTimeout ends sessions, and drops their carts, after this
	// long without a request.
	SessionIdleTimeout time.Duration
}

func durationEnv(getenv func(string) string, key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key))
	if err != nil || d < 0 {
		return def
	}
	return d
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	idle := durationEnv(getenv, "SESSION_IDLE_TIMEOUT", DefaultSessionIdleTimeout)
	if idle == 0 {
		idle = DefaultSessionIdleTimeout
	}

	return ServerConfig{
		Port:               port,
		GlitchDelay:        durationEnv(getenv, "GLITCH_DELAY", 2*time.Second),
		SessionIdleTimeout: idle,
	}
}
