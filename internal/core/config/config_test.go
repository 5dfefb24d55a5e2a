package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  env: production
  http:
    port: 8080
databases:
  development:
    driver: sqlite
    dsn: ":memory:"
  production:
    driver: postgres
    dsn: host=db dbname=contacts
    maxOpenConns: 20
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRead(t *testing.T) {
	t.Run("Should select database block for configured env", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		c, err := Read(writeConfig(t, sample))
		require.NoError(t, err)
		assert.Equal(t, "production", c.App.Env)
		assert.Equal(t, 8080, c.App.HTTP.Port)

		db, err := c.Database()
		require.NoError(t, err)
		assert.Equal(t, "postgres", db.Driver)
		assert.Equal(t, 20, db.MaxOpenConns)
	})

	t.Run("Should let APP_ENV override the file", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		c, err := Read(writeConfig(t, sample))
		require.NoError(t, err)

		db, err := c.Database()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", db.Driver)
	})

	t.Run("Should apply defaults for missing keys", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		c, err := Read(writeConfig(t, "databases: {}\n"))
		require.NoError(t, err)
		assert.Equal(t, DefaultEnv, c.App.Env)
		assert.Equal(t, 3000, c.App.HTTP.Port)
		assert.Equal(t, "logs/access.log", c.Log.Access.Filename)
		assert.EqualValues(t, 300, c.App.Limits.MaxConcurrent)
	})

	t.Run("Should fail for unknown env", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")
		c, err := Read(writeConfig(t, sample))
		require.NoError(t, err)
		_, err = c.Database()
		assert.ErrorContains(t, err, "staging")
	})

	t.Run("Should fail when file is missing", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
