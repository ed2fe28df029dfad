package port

import (
	"context"
	"officebot/internal/core/domain"
)

type Sender interface {
	// Send delivers a reply to the chat of reply.To, or to the announce channel when To is nil.
	Send(ctx context.Context, reply domain.Reply) error
}
