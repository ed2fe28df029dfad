package config

import (
	"officebot/internal/core/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, `
[bot]
log_level = "debug"
name = "officebot"
admins = ["alice", "@bob"]

[handler]
timeout = "45s"

[telegram]
bot_token = "123:abc"
announce_chat_id = -100200

[plugins]
door_url = "http://door.local/open"

[schedule]
times_per_day = 3
`)

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Bot.LogLevel)
	assert.Equal(t, TransportTelegram, c.Bot.Transport)
	assert.Equal(t, []string{"alice", "@bob"}, c.Bot.Admins)
	assert.Equal(t, 45*time.Second, c.Handler.Timeout)
	assert.Equal(t, int64(-100200), c.Telegram.AnnounceChatID)
	assert.Equal(t, "https://api.linode.com/", c.Linode.APIURL)
	assert.Equal(t, Schedule{StartHour: 9, EndHour: 16, TimesPerDay: 3, WeekdaysOnly: true}, c.Schedule)
	assert.Equal(t, "officebot.db", c.Store.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
[telegram]
bot_token = "123:abc"
`)
	t.Setenv("OFFICEBOT_PLUGINS_LINODE_API_KEY", "from-env")
	t.Setenv("OFFICEBOT_HANDLER_TIMEOUT", "5s")

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.Plugins.LinodeAPIKey)
	assert.Equal(t, 5*time.Second, c.Handler.Timeout)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "telegram without token",
			content: `[bot]` + "\n" + `transport = "telegram"`,
		},
		{
			name:    "matrix without credentials",
			content: `[bot]` + "\n" + `transport = "matrix"`,
		},
		{
			name:    "unknown transport",
			content: `[bot]` + "\n" + `transport = "irc"`,
		},
		{
			name:    "broken toml",
			content: `[bot`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestMissing(t *testing.T) {
	c := &Config{Plugins: Plugins{AudioURL: "http://mopidy.local/mopidy/rpc"}}

	assert.Empty(t, c.Missing(domain.AudioURL))
	assert.Equal(t, []domain.Setting{domain.DoorURL}, c.Missing(domain.DoorURL, domain.AudioURL))
	assert.Equal(t, []domain.Setting{domain.LinodeAPIKey}, c.Missing(domain.LinodeAPIKey))
	assert.Empty(t, c.Missing())
}
