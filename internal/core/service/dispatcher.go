package service

import (
	"context"
	"errors"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/domain/command"
	"officebot/internal/core/port"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// CommandDispatcher runs at most one command per message: the first route of the registry that
// matches, once its settings and admin checks pass.
type CommandDispatcher struct {
	registry *command.Registry
	settings port.Settings
	auth     Authorizer
	sender   port.Sender
	timeout  time.Duration
}

func NewDispatcher(registry *command.Registry, settings port.Settings, auth Authorizer, sender port.Sender,
	timeout time.Duration) *CommandDispatcher {
	return &CommandDispatcher{
		registry: registry,
		settings: settings,
		auth:     auth,
		sender:   sender,
		timeout:  timeout,
	}
}

const notConfigured = "%s is not configured: missing %s"

func (d *CommandDispatcher) Dispatch(ctx context.Context, message *domain.Message) bool {
	route, args, ok := d.registry.Match(message)
	if !ok {
		log.Debug().Str("messageId", message.ID).Msg("no route for message")
		return false
	}

	name := route.Command.GetCommand()

	dispatchID, err := uuid.NewV4()
	if err != nil {
		log.Err(err).Msg("failed to generate dispatch id")
	}

	l := log.With().
		Str("dispatchId", dispatchID.String()).
		Str("messageId", message.ID).
		Str("chatId", message.ChatID).
		Str("command", name).
		Logger()
	ctx = l.WithContext(ctx)

	message.Args = args

	if missing := d.settings.Missing(route.RequiredSettings...); len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for _, setting := range missing {
			keys = append(keys, string(setting))
		}

		l.Warn().Strs("missing", keys).Msg("command not configured")
		d.reply(ctx, domain.ErrorReply(message, fmt.Sprintf(notConfigured, name, strings.Join(keys, ", "))))

		return true
	}

	if route.AdminOnly && !d.auth.IsAdmin(ctx, message) {
		l.Info().Str("sender", message.Sender.Nick).Msg("refused non-admin sender")
		return true
	}

	l.Debug().Msg("dispatching")
	err = route.Command.Respond(ctx, d.timeout, message)
	if err == nil {
		return true
	}

	l.Error().Err(err).Msg("failed to respond to command")
	if !errors.Is(err, domain.ErrSendingReplyFailed) {
		d.reply(ctx, domain.ErrorReply(message, fmt.Sprintf("%s failed at %s", name, err)))
	}

	return true
}

func (d *CommandDispatcher) reply(ctx context.Context, reply domain.Reply) {
	if err := d.sender.Send(ctx, reply); err != nil {
		log.Ctx(ctx).Err(err).Msg("failed to send reply")
	}
}
