package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 30*time.Second, cfg.Application.SubmitLockTTL)
	assert.Equal(t, "dev-secret-change-me", cfg.Auth.JWTSecret)
	assert.Equal(t, 2, cfg.Notification.Workers)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "6543")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("APPLICATION_SUBMIT_LOCK_TTL", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 10*time.Second, cfg.Application.SubmitLockTTL)
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	cfg := &Config{
		App:         AppConfig{Environment: "production"},
		Database:    DatabaseConfig{Host: "db", Name: "hirely"},
		Application: ApplicationConfig{SubmitLockTTL: time.Second},
	}

	assert.Error(t, cfg.Validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}

	assert.Equal(t, "host=h port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
