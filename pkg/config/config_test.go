package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ADMIN_CHAT_ID", "-100500")
	t.Setenv("ADMIN_BOT_TOKEN", "token")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("STATUS_READY_CODE", "DONE")
	t.Setenv("TELEGRAM_DEBUG", "true")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(-100500), cfg.Telegram.AdminChatID)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "DONE", cfg.Notify.ReadyStatusCode)
	assert.Equal(t, "NEW", cfg.Notify.NewStatusCode)
	assert.True(t, cfg.Telegram.Debug)
	require.NoError(t, cfg.Validate())
}

func TestValidate_ReportsEveryMissingValue(t *testing.T) {
	cfg := &Config{Notify: NotifyConfig{NewStatusCode: "NEW", ReadyStatusCode: "READY"}}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
	assert.Contains(t, err.Error(), "ADMIN_BOT_TOKEN")
	assert.Contains(t, err.Error(), "ADMIN_CHAT_ID")
}

func TestNew_ServerListsAndURL(t *testing.T) {
	t.Setenv("PUBLIC_URL", "https://example.com/")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := New()

	assert.Equal(t, "https://example.com", cfg.Server.PublicURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}
