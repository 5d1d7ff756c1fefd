package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "24h", cfg.JWT.Expiration)
	assert.Equal(t, "usd", cfg.Payment.Currency)
	assert.False(t, cfg.Auth.LegacyInvertedAdminCheck)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigFileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := `
server:
  port: "4000"
database:
  driver: memory
jwt:
  secret: from-file
  expiration: 2h
auth:
  legacy_inverted_admin_check: false
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	t.Setenv("PORT", "5000")
	t.Setenv("AUTH_LEGACY_INVERTED_ADMIN_CHECK", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "2h", cfg.JWT.Expiration)
	assert.True(t, cfg.Auth.LegacyInvertedAdminCheck)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	t.Run("duration", func(t *testing.T) {
		t.Setenv("JWT_EXPIRATION", "one day")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("bool", func(t *testing.T) {
		t.Setenv("AUTH_LEGACY_INVERTED_ADMIN_CHECK", "maybe")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
}
