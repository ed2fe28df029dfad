package handler

import (
	"context"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Telegram turns incoming updates into messages for the dispatcher.
type Telegram struct {
	dispatcher port.Dispatcher
	names      []string
}

// NewTelegram takes the bot's own username and its configured name. A message starting with
// either of them is addressed to the bot.
func NewTelegram(dispatcher port.Dispatcher, username, name string) *Telegram {
	names := []string{username}
	if name != "" && !strings.EqualFold(name, username) {
		names = append(names, name)
	}

	return &Telegram{dispatcher: dispatcher, names: names}
}

func (h *Telegram) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" || update.Message.From == nil {
		return
	}

	if update.Message.From.IsBot {
		return
	}

	message := toMessage(update.Message, h.names)

	log.Debug().
		Str("messageId", message.ID).
		Str("chatId", message.ChatID).
		Bool("directed", message.Directed).
		Msg("received message")

	h.dispatcher.Dispatch(ctx, message)
}

func toMessage(m *models.Message, names []string) *domain.Message {
	text, directed := m.Text, false
	for _, name := range names {
		if text, directed = domain.StripMention(m.Text, name); directed {
			break
		}
	}
	if m.Chat.Type == models.ChatTypePrivate {
		directed = true
	}

	return &domain.Message{
		ID:     strconv.Itoa(m.ID),
		ChatID: strconv.FormatInt(m.Chat.ID, 10),
		Sender: domain.Sender{
			ID:   strconv.FormatInt(m.From.ID, 10),
			Nick: getUserNameOrFirstName(m.From),
		},
		Text:     text,
		Directed: directed,
	}
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return user.Username
}
