package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const baseConfig = `
[server]
http_port = 9090

[database]
driver = "pgx"
host = "db"
port = 5433
user = "parking"
dbname = "smartparking"

[auth]
jwt_secret = "file-secret"

[booking]
timezone = "Europe/Berlin"
sweep_interval_seconds = 30
`

func TestLoad(t *testing.T) {
	t.Run("file values with defaults", func(t *testing.T) {
		path := writeConfig(t, baseConfig)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.HTTPPort)
		assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
		assert.Equal(t, DriverPgx, cfg.Database.Driver)
		assert.Equal(t, "db", cfg.Database.Host)
		assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, 30*time.Second, cfg.Booking.SweepInterval())
		assert.Equal(t, 50, cfg.Booking.DashboardRecentLimit)
		assert.Equal(t, "Europe/Berlin", cfg.Booking.Location().String())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("DB_PASSWORD", "pw")
		t.Setenv("HTTP_PORT", "7070")
		path := writeConfig(t, baseConfig)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, "pw", cfg.Database.Password)
		assert.Equal(t, 7070, cfg.Server.HTTPPort)
	})

	t.Run("non numeric port in environment", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "abc")
		path := writeConfig(t, baseConfig)

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorIs(t, err, ErrReadConfig)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaults()
		cfg.Database.DBName = "smartparking"
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port out of range", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"no database name", func(c *Config) { c.Database.DBName = "" }},
		{"no jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"bad timezone", func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{"zero sweep interval", func(c *Config) { c.Booking.SweepIntervalSeconds = 0 }},
		{"zero dashboard limit", func(c *Config) { c.Booking.DashboardRecentLimit = 0 }},
		{"metrics without path", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Path = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", d.DSN())
}
