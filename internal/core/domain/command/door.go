package command

import (
	"context"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"time"
)

type Door struct {
	door    port.Door
	sender  port.Sender
	command string
}

func NewDoor(door port.Door, sender port.Sender, command string) *Door {
	return &Door{door: door, sender: sender, command: command}
}

func (d *Door) GetCommand() string {
	return d.command
}

func (d *Door) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, d.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := d.door.Open(ctx); err != nil {
		l.Error().Err(err).Msg("error opening door")
		return send(ctx, d.sender, domain.ErrorReply(message, "I could not open the door"))
	}

	return send(ctx, d.sender, domain.ReplyTo(message, fmt.Sprintf("Say welcome %s!", nick(message))))
}
