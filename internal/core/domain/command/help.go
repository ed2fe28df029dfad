package command

import (
	"context"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"strings"
	"time"
)

// Help lists the routes of the registry it is registered in.
type Help struct {
	registry *Registry
	sender   port.Sender
	command  string
}

func NewHelp(registry *Registry, sender port.Sender, command string) *Help {
	return &Help{registry: registry, sender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, h.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var b strings.Builder
	b.WriteString("Here is what I can do:")
	for _, route := range h.registry.ListCommands() {
		if route.Description == "" {
			continue
		}

		b.WriteString("\n")
		b.WriteString(route.Description)
		if route.AdminOnly {
			b.WriteString(" (admins only)")
		}
	}

	return send(ctx, h.sender, domain.ReplyTo(message, b.String()))
}
