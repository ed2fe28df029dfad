package port

import (
	"context"
	"officebot/internal/core/domain"
	"time"
)

type Command interface {
	// Respond handles a matched message within the given timeout. Captured pattern groups are in message.Args.
	Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error
	// GetCommand returns the name the command is registered and logged under.
	GetCommand() string
}

type Dispatcher interface {
	// Dispatch runs the first command matching the message and reports whether one matched.
	Dispatch(ctx context.Context, message *domain.Message) bool
}
