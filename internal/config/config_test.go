package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "club.db")
	t.Setenv("PORT", "9090")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("OUTBOX_SCHEDULE", "")

	cfg := Load()

	assert.Equal(t, "club.db", cfg.DBName)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "C123", cfg.Slack.ChannelID)
	assert.Equal(t, defaultOutboxSchedule, cfg.OutboxSchedule, "empty values fall back to the default")
	assert.Empty(t, cfg.Turso.PrimaryURL)
}
