package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.True(t, cfg.Auth.BootstrapAdmin)
	assert.Equal(t, "admin", cfg.Auth.BootstrapAdminUsername)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TOKEN_TTL_HOURS", "1")
	t.Setenv("BOOTSTRAP_ADMIN", "false")
	t.Setenv("BOOTSTRAP_ADMIN_USERNAME", "operator")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 1, cfg.Auth.TokenTTLHours)
	assert.False(t, cfg.Auth.BootstrapAdmin)
	assert.Equal(t, "operator", cfg.Auth.BootstrapAdminUsername)
}
