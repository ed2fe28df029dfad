package command

import (
	"context"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// newLogger derives the handler logger from the one the dispatcher put into ctx.
func newLogger(ctx context.Context, command string, message *domain.Message) zerolog.Logger {
	lc := log.Ctx(ctx).With().Str("command", command)
	if message != nil {
		lc = lc.Str("messageId", message.ID).Str("chatId", message.ChatID)
	}

	return lc.Logger()
}

// send delivers the replies in order and stops at the first one that fails.
func send(ctx context.Context, sender port.Sender, replies ...domain.Reply) error {
	for _, reply := range replies {
		if err := sender.Send(ctx, reply); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}
	}

	return nil
}

// nick returns the sender's nickname the way it is greeted in replies.
func nick(message *domain.Message) string {
	return cases.Title(language.Und).String(message.Sender.Nick)
}
