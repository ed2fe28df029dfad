package domain

import (
	"strings"
)

// Mode decides which messages a command pattern is matched against.
type Mode int

const (
	// RespondTo patterns only match messages addressed to the bot, against the whole stripped text.
	RespondTo Mode = iota
	// Hear patterns match anywhere in any message.
	Hear
)

func (m Mode) String() string {
	switch m {
	case RespondTo:
		return "respond_to"
	case Hear:
		return "hear"
	default:
		return "unknown"
	}
}

// Setting names a configuration value a command cannot run without.
type Setting string

const (
	DoorURL      Setting = "DOOR_URL"
	AudioURL     Setting = "AUDIO_URL"
	LinodeAPIKey Setting = "LINODE_API_KEY"
)

// StripMention removes a leading mention of the bot from text. It accepts "@name", "name:" and
// "name," forms as well as Telegram style "/command@name" prefixes, and reports whether the
// text was addressed to the bot.
func StripMention(text, botName string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if strings.HasPrefix(text, "/") {
		command, args, _ := strings.Cut(text[1:], " ")
		if name, target, ok := strings.Cut(command, "@"); ok {
			if botName == "" || !strings.EqualFold(target, botName) {
				return text, false
			}
			command = name
		}

		return strings.TrimSpace(strings.Join([]string{command, args}, " ")), true
	}

	if botName == "" {
		return text, false
	}

	first, rest, _ := strings.Cut(text, " ")
	mention := strings.TrimRight(strings.TrimPrefix(first, "@"), ":,")
	// a bare "name" without "@" or trailing punctuation is just a word
	if !strings.EqualFold(mention, botName) || mention == first {
		return text, false
	}

	return strings.TrimSpace(rest), true
}
