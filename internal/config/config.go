package config

import (
	"errors"
	"fmt"
	"officebot/internal/core/domain"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	TransportTelegram = "telegram"
	TransportMatrix   = "matrix"
)

type Config struct {
	Bot      Bot      `mapstructure:"bot"`
	Handler  Handler  `mapstructure:"handler"`
	Telegram Telegram `mapstructure:"telegram"`
	Matrix   Matrix   `mapstructure:"matrix"`
	Store    Store    `mapstructure:"store"`
	Plugins  Plugins  `mapstructure:"plugins"`
	Linode   Linode   `mapstructure:"linode"`
	Audio    Audio    `mapstructure:"audio"`
	Schedule Schedule `mapstructure:"schedule"`
}

type Bot struct {
	LogLevel  string   `mapstructure:"log_level"`
	Name      string   `mapstructure:"name"`
	Transport string   `mapstructure:"transport"`
	Admins    []string `mapstructure:"admins"`
}

type Handler struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type Telegram struct {
	BotToken       string `mapstructure:"bot_token"`
	AnnounceChatID int64  `mapstructure:"announce_chat_id"`
}

type Matrix struct {
	Homeserver   string   `mapstructure:"homeserver"`
	UserID       string   `mapstructure:"user_id"`
	AccessToken  string   `mapstructure:"access_token"`
	Rooms        []string `mapstructure:"rooms"`
	AnnounceRoom string   `mapstructure:"announce_room"`
}

type Store struct {
	// Path of the SQLite database. Empty keeps the cache in memory.
	Path string `mapstructure:"path"`
}

type Plugins struct {
	DoorURL      string `mapstructure:"door_url"`
	AudioURL     string `mapstructure:"audio_url"`
	LinodeAPIKey string `mapstructure:"linode_api_key"`
}

type Linode struct {
	APIURL string `mapstructure:"api_url"`
}

type Audio struct {
	Streams []string `mapstructure:"streams"`
}

type Schedule struct {
	StartHour    int  `mapstructure:"start_hour"`
	EndHour      int  `mapstructure:"end_hour"`
	TimesPerDay  int  `mapstructure:"times_per_day"`
	WeekdaysOnly bool `mapstructure:"weekdays_only"`
}

var defaults = map[string]any{
	"bot.log_level":             "info",
	"bot.name":                  "officebot",
	"bot.transport":             TransportTelegram,
	"bot.admins":                []string{},
	"handler.timeout":           "30s",
	"telegram.bot_token":        "",
	"telegram.announce_chat_id": 0,
	"matrix.homeserver":         "",
	"matrix.user_id":            "",
	"matrix.access_token":       "",
	"matrix.rooms":              []string{},
	"matrix.announce_room":      "",
	"store.path":                "officebot.db",
	"plugins.door_url":          "",
	"plugins.audio_url":         "",
	"plugins.linode_api_key":    "",
	"linode.api_url":            "https://api.linode.com/",
	"audio.streams":             []string{},
	"schedule.start_hour":       9,
	"schedule.end_hour":         16,
	"schedule.times_per_day":    2,
	"schedule.weekdays_only":    true,
}

// Load reads config.toml from the given directories, the working directory if none are given.
// Every key can be overridden from the environment, e.g. OFFICEBOT_PLUGINS_DOOR_URL.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("OFFICEBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) validate() error {
	switch c.Bot.Transport {
	case TransportTelegram:
		if c.Telegram.BotToken == "" {
			return errors.New("telegram.bot_token is required for the telegram transport")
		}
	case TransportMatrix:
		if c.Matrix.Homeserver == "" || c.Matrix.UserID == "" || c.Matrix.AccessToken == "" {
			return errors.New("matrix.homeserver, matrix.user_id and matrix.access_token are required " +
				"for the matrix transport")
		}
	default:
		return fmt.Errorf("unknown transport %q", c.Bot.Transport)
	}

	if c.Handler.Timeout <= 0 {
		return errors.New("handler.timeout must be positive")
	}

	return nil
}

// Missing implements the settings check commands are dispatched through.
func (c *Config) Missing(required ...domain.Setting) []domain.Setting {
	var missing []domain.Setting
	for _, setting := range required {
		if c.setting(setting) == "" {
			missing = append(missing, setting)
		}
	}

	return missing
}

func (c *Config) setting(setting domain.Setting) string {
	switch setting {
	case domain.DoorURL:
		return c.Plugins.DoorURL
	case domain.AudioURL:
		return c.Plugins.AudioURL
	case domain.LinodeAPIKey:
		return c.Plugins.LinodeAPIKey
	default:
		return ""
	}
}
