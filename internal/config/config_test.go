package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
apiPort: 9000
database:
  type: postgres
  host: db.internal
  port: "5433"
  name: blog
  user: blog
  password: secret
auth:
  accessTokenSecret: access-secret
  refreshTokenSecret: refresh-secret
  accessTokenTTLMin: 30
  refreshTokenTTLHrs: 48
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5433", cfg.Database.Port)
	assert.Equal(t, "access-secret", cfg.Auth.AccessTokenSecret)
	assert.Equal(t, 30, cfg.Auth.AccessTokenTTLMin)
	assert.Equal(t, 48, cfg.Auth.RefreshTokenTTLHrs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `{}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.APIPort)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/data/blogserver.db", cfg.Database.Path)
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMin)
	assert.Equal(t, 7*24, cfg.Auth.RefreshTokenTTLHrs)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err, "a missing config file falls back to defaults and env")
	assert.Equal(t, 4000, cfg.APIPort)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("AUTH_ACCESSTOKENSECRET", "from-env")
	t.Setenv("AUTH_REFRESHTOKENSECRET", "also-from-env")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.AccessTokenSecret)
	assert.Equal(t, "also-from-env", cfg.Auth.RefreshTokenSecret)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Database.Type = "sqlite"
		cfg.Auth.AccessTokenSecret = "a"
		cfg.Auth.RefreshTokenSecret = "r"
		return cfg
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("MissingAccessSecret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.AccessTokenSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("MissingRefreshSecret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.RefreshTokenSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("IdenticalSecrets", func(t *testing.T) {
		cfg := base()
		cfg.Auth.RefreshTokenSecret = cfg.Auth.AccessTokenSecret
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadDatabaseType", func(t *testing.T) {
		cfg := base()
		cfg.Database.Type = "oracle"
		assert.Error(t, cfg.Validate())
	})
}
