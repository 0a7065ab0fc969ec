package config_test

import (
	"testing"
	"time"

	"chefdhundo-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("DIRECTORY_MAX_AGE", "not-a-duration")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "@every 5m", cfg.DirectoryRefreshSpec)
		assert.Equal(t, 5*time.Minute, cfg.DirectoryMaxAge)
		assert.Equal(t, "email", cfg.ClerkEmailClaim)
		assert.Empty(t, cfg.CORSAllowedOrigins)
	})

	t.Run("Should read overrides", func(t *testing.T) {
		t.Setenv("PENDING_EDIT_TTL", "90s")
		t.Setenv("CASHFREE_VERIFY_WEBHOOK", "true")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com/, https://b.example.com")
		t.Setenv("APP_ENV", "production")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, cfg.PendingEditTTL)
		assert.True(t, cfg.CashfreeVerifyWebhook)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
		assert.True(t, cfg.IsProduction())
	})
}
