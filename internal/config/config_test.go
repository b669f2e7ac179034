package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("FITTRACK_DATABASE_URL", "postgres://fittrack@localhost:5432/fittrack")
	t.Setenv("FITTRACK_AUTH_JWT_SECRET", "test-secret")
}

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when only required vars are set", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "development", cfg.Server.Environment)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
		assert.True(t, cfg.Auth.RequirePremium)
		assert.Equal(t, 10.0, cfg.RateLimit.PerSecond)
		assert.Equal(t, 20, cfg.RateLimit.Burst)
		assert.Empty(t, cfg.Events.Brokers)
		assert.Equal(t, "fittrack.profile-updated", cfg.Events.Topic)
		assert.Equal(t, "scaled", cfg.Nutrition.AdjustmentPolicy)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		setRequired(t)
		t.Setenv("FITTRACK_SERVER_PORT", "9090")
		t.Setenv("FITTRACK_SERVER_ENVIRONMENT", "production")
		t.Setenv("FITTRACK_SERVER_SHUTDOWN_TIMEOUT", "3s")
		t.Setenv("FITTRACK_AUTH_REQUIRE_PREMIUM", "false")
		t.Setenv("FITTRACK_AUTH_JWT_ISSUER", "fittrack-auth")
		t.Setenv("FITTRACK_RATELIMIT_BURST", "5")
		t.Setenv("FITTRACK_EVENTS_BROKERS", "kafka-1:9092,kafka-2:9092")
		t.Setenv("FITTRACK_NUTRITION_ADJUSTMENT_POLICY", "flat")
		t.Setenv("FITTRACK_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
		assert.False(t, cfg.Auth.RequirePremium)
		assert.Equal(t, "fittrack-auth", cfg.Auth.JWTIssuer)
		assert.Equal(t, 5, cfg.RateLimit.Burst)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Brokers)
		assert.Equal(t, "flat", cfg.Nutrition.AdjustmentPolicy)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("fails without a database URL", func(t *testing.T) {
		t.Setenv("FITTRACK_DATABASE_URL", "")
		t.Setenv("FITTRACK_AUTH_JWT_SECRET", "test-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database URL is required")
	})

	t.Run("fails without a JWT secret", func(t *testing.T) {
		t.Setenv("FITTRACK_DATABASE_URL", "postgres://localhost/fittrack")
		t.Setenv("FITTRACK_AUTH_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("rejects an unknown adjustment policy", func(t *testing.T) {
		setRequired(t)
		t.Setenv("FITTRACK_NUTRITION_ADJUSTMENT_POLICY", "aggressive")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "adjustment policy")
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("does not override existing variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("FITTRACK_TEST_KEEP=from-file\nFITTRACK_TEST_NEW=from-file\n"), 0o600))

		t.Setenv("FITTRACK_TEST_KEEP", "from-env")
		t.Setenv("FITTRACK_TEST_NEW", "")
		os.Unsetenv("FITTRACK_TEST_NEW")

		require.NoError(t, LoadEnvFile(path))
		assert.Equal(t, "from-env", os.Getenv("FITTRACK_TEST_KEEP"))
		assert.Equal(t, "from-file", os.Getenv("FITTRACK_TEST_NEW"))
	})
}
