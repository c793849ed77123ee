package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DefaultAppPort is the port launched applications listen on when the
// runtime environment supplies no PORT value.
const DefaultAppPort = "8080"

// Config holds all process-wide settings. It is populated once at startup
// and passed explicitly to the components that need it; nothing reads the
// environment after FromEnv returns.
type Config struct {
	// ListenAddr is the address the control API binds to.
	ListenAddr string
	// AppPort is the default port injected into launched app containers.
	AppPort string
	// Domain is the suffix used for subdomain routing (e.g. "localhost"
	// makes "myapp.localhost" resolve to the container named "myapp").
	Domain string
}

// Resolve returns value, or fallback when value is unset or empty.
// Empty and unset are deliberately indistinguishable: an orchestrator that
// exports PORT="" gets the same default as one that exports nothing.
// No range validation happens here; a bad port is passed through and the
// server process reports the bind failure itself.
func Resolve(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// FromEnv builds the Config from the process environment. A .env file in
// the working directory is merged in first when present; real environment
// variables win over .env entries.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr: ":" + Resolve(os.Getenv("SLIPWAY_PORT"), "3000"),
		AppPort:    Resolve(os.Getenv("PORT"), DefaultAppPort),
		Domain:     Resolve(os.Getenv("SLIPWAY_DOMAIN"), "localhost"),
	}
}
