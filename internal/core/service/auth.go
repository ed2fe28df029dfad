package service

import (
	"context"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

type Authorizer interface {
	// IsAdmin reports whether the sender may run admin-only commands. A refused sender is told so.
	IsAdmin(ctx context.Context, message *domain.Message) bool
}

type AdminAuthorizer struct {
	admins []string
	sender port.Sender
}

// NewAuthorizer accepts admins by sender ID or nickname; a leading "@" is ignored.
func NewAuthorizer(admins []string, sender port.Sender) *AdminAuthorizer {
	list := make([]string, 0, len(admins))
	for _, admin := range admins {
		if admin = normalizeIdentity(admin); admin != "" {
			list = append(list, admin)
		}
	}

	return &AdminAuthorizer{
		admins: list,
		sender: sender,
	}
}

const forbidden = "Sorry %s, only admins can do that."

func (a *AdminAuthorizer) IsAdmin(ctx context.Context, message *domain.Message) bool {
	for _, admin := range a.admins {
		if admin == normalizeIdentity(message.Sender.ID) || admin == normalizeIdentity(message.Sender.Nick) {
			return true
		}
	}

	err := a.sender.Send(ctx, domain.ErrorReply(message, fmt.Sprintf(forbidden, message.Sender.Nick)))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}

func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(identity), "@"))
}
