package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envKeys are cleared before each case so the host environment cannot leak in.
var envKeys = []string{
	"MARKETPLACE_APP_NAME",
	"MARKETPLACE_APP_ENV",
	"MARKETPLACE_APP_PORT",
	"MARKETPLACE_DATABASE_DRIVER",
	"MARKETPLACE_DATABASE_HOST",
	"MARKETPLACE_DATABASE_PORT",
	"MARKETPLACE_DATABASE_PASSWORD",
	"MARKETPLACE_DATABASE_MAX_OPEN_CONNS",
	"MARKETPLACE_DATABASE_MAX_IDLE_CONNS",
	"MARKETPLACE_JWT_SECRET",
	"MARKETPLACE_SESSION_SECRET",
	"MARKETPLACE_STORAGE_DRIVER",
	"MARKETPLACE_STORAGE_S3_BUCKET",
	"MARKETPLACE_ORDERS_STATUS_POLICY",
	"MARKETPLACE_MEDIA_URL",
	"MARKETPLACE_TELEMETRY_SAMPLING_RATIO",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "marketplace-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "marketplace", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "/media/", cfg.Media.URL)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "permissive", cfg.Orders.StatusPolicy)
		assert.Equal(t, "marketplace_session", cfg.Session.CookieName)
		assert.Equal(t, cfg.App.Name, cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with MARKETPLACE prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MARKETPLACE_APP_NAME", "test-app")
		t.Setenv("MARKETPLACE_APP_PORT", "9000")
		t.Setenv("MARKETPLACE_DATABASE_HOST", "testdb.local")
		t.Setenv("MARKETPLACE_DATABASE_PORT", "5433")
		t.Setenv("MARKETPLACE_ORDERS_STATUS_POLICY", "forward")
		t.Setenv("MARKETPLACE_MEDIA_URL", "https://cdn.example.com/media/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "forward", cfg.Orders.StatusPolicy)
		assert.Equal(t, "https://cdn.example.com/media/", cfg.Media.URL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MARKETPLACE_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("MARKETPLACE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MARKETPLACE_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("s3 storage requires bucket", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MARKETPLACE_STORAGE_DRIVER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.s3.bucket")
	})

	t.Run("rejects unknown status policy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MARKETPLACE_ORDERS_STATUS_POLICY", "strict")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orders.status_policy")
	})

	t.Run("rejects sampling ratio out of range", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MARKETPLACE_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MARKETPLACE_APP_ENV", "production")
		t.Setenv("MARKETPLACE_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("MARKETPLACE_SESSION_SECRET", "session-secret-for-production-use")
		t.Setenv("MARKETPLACE_DATABASE_PASSWORD", "secure-password")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("rejects default jwt secret", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("MARKETPLACE_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be set")
	})

	t.Run("requires jwt.secret at least 32 characters", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("MARKETPLACE_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("rejects default session secret", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("MARKETPLACE_SESSION_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.secret")
	})

	t.Run("rejects sqlite", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("MARKETPLACE_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sqlite")
	})

	t.Run("requires database.password", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("MARKETPLACE_DATABASE_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})

	t.Run("sqlite uses file path", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "sqlite", SQLitePath: "file::memory:"}
		assert.Equal(t, "file::memory:", cfg.DSN())
	})
}
