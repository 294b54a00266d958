package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOOKING_API_TOKEN", "test-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.APIToken)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http", cfg.ServerType)
	assert.Equal(t, "TheHungryUnicorn", cfg.Restaurant)
	assert.Equal(t, 100, cfg.MaxSessions)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "Europe/London", cfg.Timezone.String())
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOOKING_API_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOKING_API_TOKEN", "tok")
	t.Setenv("PORT", "9000")
	t.Setenv("SERVER_TYPE", "both")
	t.Setenv("RESTAURANT", "TheGoldenFork")
	t.Setenv("SESSION_TIMEOUT", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "both", cfg.ServerType)
	assert.Equal(t, "TheGoldenFork", cfg.Restaurant)
	assert.Equal(t, 5*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Timezone)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BOOKING_API_TOKEN", "tok")

	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("server type", func(t *testing.T) {
		t.Setenv("SERVER_TYPE", "carrier-pigeon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("timezone", func(t *testing.T) {
		t.Setenv("TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestBaseURL(t *testing.T) {
	cfg := &Config{
		BaseURLPrefix: "http://localhost:8547/api/ConsumerApi/v1/Restaurant/",
		Restaurant:    "TheHungryUnicorn",
	}
	assert.Equal(t, "http://localhost:8547/api/ConsumerApi/v1/Restaurant/TheHungryUnicorn", cfg.BaseURL())
}
