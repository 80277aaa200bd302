package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
password = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "09:00", cfg.Slots.Open)
	assert.Equal(t, "21:00", cfg.Slots.Close)
	assert.Equal(t, 60, cfg.Slots.IntervalMinutes)
	assert.Equal(t, time.Hour, cfg.Reminder.Period())
	assert.Equal(t, 24*time.Hour, cfg.Reminder.Lead())
	assert.Equal(t, time.Hour, cfg.Reminder.Window())
	assert.Equal(t, UsersBackendPostgres, cfg.Users.Backend)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=reservation sslmode=disable", cfg.Database.DSN())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvKeyDBPassword, "from-env")
	t.Setenv(EnvKeyTelegramToken, "123:ABC")
	t.Setenv(EnvKeyLogLevel, "DEBUG")

	cfg, err := Load(writeConfig(t, `
[database]
password = "from-file"
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "123:ABC", cfg.Telegram.Token)
	assert.Equal(t, "debug", cfg.Logs.Level)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv(EnvKeyMongoURI, "")

	_, err := Load(writeConfig(t, `
[app]
env = "staging"

[slots]
interval_minutes = 0

[users]
backend = "mongo"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.env")
	assert.Contains(t, err.Error(), "slots.interval_minutes")
	assert.Contains(t, err.Error(), "users.mongo_uri")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	cfg := Default()
	cfg.App.Timezone = "Asia/Tashkent"

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tashkent", loc.String())
}
