package sender

import (
	"context"
	"errors"
	"fmt"
	"html"
	"officebot/internal/core/domain"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const TelegramMessageLimit = 4096

// redMarker stands in for the error colour, Telegram messages have none.
const redMarker = "🔴 "

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Telegram struct {
	bot          TelegramBot
	announceChat int64
}

// NewTelegram sends replies without a target message to announceChat.
func NewTelegram(b TelegramBot, announceChat int64) *Telegram {
	return &Telegram{bot: b, announceChat: announceChat}
}

func (s *Telegram) Send(ctx context.Context, reply domain.Reply) error {
	chatID, replyTo, err := s.target(reply)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	// Telegram HTML has no tables, rich replies go out as their preformatted plain text
	text, pre := reply.Content, false
	if reply.HTML && reply.Text != "" {
		text, pre = reply.Text, true
	}
	if reply.Color == domain.Red {
		text = redMarker + text
	}

	for _, chunk := range chunkText(text, TelegramMessageLimit) {
		params := &bot.SendMessageParams{
			ChatID:              chatID,
			Text:                formatChunk(chunk, reply.HTML, pre),
			ParseMode:           models.ParseModeHTML,
			DisableNotification: !reply.Notify,
		}
		if replyTo != 0 {
			params.ReplyParameters = &models.ReplyParameters{MessageID: replyTo, ChatID: chatID}
		}

		if _, err := s.bot.SendMessage(ctx, params); err != nil {
			log.Error().Err(err).Int64("chatId", chatID).Msg("failed to send message")
			return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}
	}

	return nil
}

func (s *Telegram) target(reply domain.Reply) (int64, int, error) {
	if reply.To == nil {
		if s.announceChat == 0 {
			return 0, 0, errors.New("no announce chat configured")
		}

		return s.announceChat, 0, nil
	}

	chatID, err := strconv.ParseInt(reply.To.ChatID, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid chat id %q: %w", reply.To.ChatID, err)
	}

	if !reply.Quote {
		return chatID, 0, nil
	}

	messageID, err := strconv.Atoi(reply.To.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid message id %q: %w", reply.To.ID, err)
	}

	return chatID, messageID, nil
}

func formatChunk(chunk string, isHTML, pre bool) string {
	switch {
	case pre:
		return "<pre>" + html.EscapeString(chunk) + "</pre>"
	case isHTML:
		return chunk
	default:
		return html.EscapeString(chunk)
	}
}

// chunkText splits text into pieces of at most limit runes.
func chunkText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > 0 {
		n := min(limit, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	return chunks
}
