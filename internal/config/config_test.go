package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CorsOrigins)
	assert.Equal(t, "mock", cfg.LLM.Mode)
	assert.Equal(t, 30*time.Second, cfg.LLM.CallTimeout)
	assert.Equal(t, 300*time.Second, cfg.Server.RequestTimeout)
	assert.Greater(t, cfg.Server.WriteTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, 6*time.Hour, cfg.Trend.MicroTrendWindow)
	assert.Equal(t, 5*time.Second, cfg.Timing.EventFeedTimeout)
	assert.False(t, cfg.Database.Enabled)
	assert.Empty(t, cfg.NATS.URL)
	assert.Empty(t, cfg.Events.StaticEvents)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CADENCE_SERVER_PORT", "9090")
	t.Setenv("CADENCE_LLM_CALL_TIMEOUT", "5s")
	t.Setenv("CADENCE_EVENTS_STATIC_EVENTS", "holiday:Black Friday, algorithm_update:Feed ranking")
	t.Setenv("CADENCE_DATABASE_SSL_MODE", "require")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.LLM.CallTimeout)
	assert.Equal(t, []string{"holiday:Black Friday", "algorithm_update:Feed ranking"}, cfg.Events.StaticEvents)
	assert.Contains(t, cfg.Database.DSN(), "sslmode=require")
}

func TestLoad_ProviderKeyFallsBackToUnprefixedName(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CADENCE_LLM_MODE", "live")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIKey)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		t.Setenv("CADENCE_LLM_MODE", "shadow")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("live without keys", func(t *testing.T) {
		t.Setenv("CADENCE_LLM_MODE", "live")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("ANTHROPIC_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("write timeout cuts off requests", func(t *testing.T) {
		t.Setenv("CADENCE_SERVER_REQUEST_TIMEOUT", "300s")
		t.Setenv("CADENCE_SERVER_WRITE_TIMEOUT", "120s")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "write timeout")
	})

	t.Run("mock in production", func(t *testing.T) {
		t.Setenv("CADENCE_APP_ENV", "production")
		_, err := Load()
		require.Error(t, err)
	})
}
