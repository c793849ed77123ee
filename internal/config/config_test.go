package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveReturnsValueWhenSet(t *testing.T) {
	assert.Equal(t, "9000", Resolve("9000", "8080"))
}

func TestResolveFallsBackWhenEmpty(t *testing.T) {
	assert.Equal(t, "8080", Resolve("", "8080"))
}

func TestResolveDoesNotValidate(t *testing.T) {
	// Garbage values pass through untouched; rejecting them is the
	// server process's job.
	assert.Equal(t, "not-a-port", Resolve("not-a-port", "8080"))
	assert.Equal(t, "99999", Resolve("99999", "8080"))
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("SLIPWAY_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("SLIPWAY_DOMAIN", "")

	cfg := FromEnv()
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, DefaultAppPort, cfg.AppPort)
	assert.Equal(t, "localhost", cfg.Domain)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SLIPWAY_PORT", "4000")
	t.Setenv("PORT", "9000")
	t.Setenv("SLIPWAY_DOMAIN", "apps.example.com")

	cfg := FromEnv()
	assert.Equal(t, ":4000", cfg.ListenAddr)
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "apps.example.com", cfg.Domain)
}
